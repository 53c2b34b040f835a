package scan

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	pyerrors "pydeps/internal/errors"
	"pydeps/internal/resolve"
)

// ImportParser extracts import targets from Python syntax trees.
// Not safe for concurrent use; each scan owns its own parser.
type ImportParser struct {
	parser *sitter.Parser
}

// NewImportParser creates a parser configured for the Python grammar.
func NewImportParser() *ImportParser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &ImportParser{parser: p}
}

// ParseImports parses source and returns its import targets in source order.
// Plain imports contribute each named target verbatim; from-style imports
// contribute the clause resolved against currentFQN. A tree containing
// syntax errors counts as a parse failure.
func (p *ImportParser) ParseImports(ctx context.Context, source []byte, currentFQN string) ([]string, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, pyerrors.Wrap(pyerrors.ParseFailed, "parsing "+currentFQN, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, pyerrors.New(pyerrors.ParseFailed, "syntax error in "+currentFQN)
	}

	var targets []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "import_statement":
			targets = append(targets, plainImportTargets(n, source)...)
		case "import_from_statement":
			targets = append(targets, fromImportTarget(n, source, currentFQN))
		case "future_import_statement":
			targets = append(targets, resolve.ResolveRelative(currentFQN, 0, "__future__"))
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)

	return targets, nil
}

// plainImportTargets collects the dotted names of an `import a.b, c as d`
// statement.
func plainImportTargets(n *sitter.Node, source []byte) []string {
	var targets []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			targets = append(targets, child.Content(source))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				targets = append(targets, name.Content(source))
			}
		}
	}
	return targets
}

// fromImportTarget resolves the module clause of a `from X import ...`
// statement. The clause may be absolute (`from a.b import c`) or relative
// (`from ..pkg import c`, `from . import c`); both go through the resolver.
func fromImportTarget(n *sitter.Node, source []byte, currentFQN string) string {
	moduleName := n.ChildByFieldName("module_name")
	if moduleName == nil {
		return resolve.ResolveRelative(currentFQN, 0, "")
	}

	switch moduleName.Type() {
	case "relative_import":
		level := 0
		clause := ""
		for i := 0; i < int(moduleName.NamedChildCount()); i++ {
			child := moduleName.NamedChild(i)
			switch child.Type() {
			case "import_prefix":
				level = strings.Count(child.Content(source), ".")
			case "dotted_name":
				clause = child.Content(source)
			}
		}
		return resolve.ResolveRelative(currentFQN, level, clause)
	default:
		// dotted_name: an absolute clause, level 0
		return resolve.ResolveRelative(currentFQN, 0, moduleName.Content(source))
	}
}
