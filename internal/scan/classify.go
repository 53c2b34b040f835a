package scan

// Classify partitions every record's raw imports into internal and external
// against the catalog, preserving encounter order within each partition.
func Classify(records map[string]*ModuleRecord, catalog *Catalog) {
	for _, rec := range records {
		rec.InternalImports = make([]string, 0, len(rec.RawImports))
		rec.ExternalImports = make([]string, 0)
		for _, target := range rec.RawImports {
			if catalog.IsInternal(target) {
				rec.InternalImports = append(rec.InternalImports, target)
			} else {
				rec.ExternalImports = append(rec.ExternalImports, target)
			}
		}
	}
}
