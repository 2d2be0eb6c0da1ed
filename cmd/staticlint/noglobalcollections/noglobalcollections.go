// Package noglobalcollections reports package-level variables of slice or
// map type. Records and indexes belong to an owned store that is passed to
// whoever needs it, not to ambient package state shared by every request.
package noglobalcollections

import (
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer flags `var` declarations at package level whose type is a slice
// or a map.
var Analyzer = &analysis.Analyzer{
	Name: "noglobalcollections",
	Doc:  "prohibits package-level slice and map variables",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		filename := pass.Fset.File(file.Pos()).Name()
		if isGoBuildCacheFile(filename) || strings.HasSuffix(filename, "_test.go") {
			continue
		}

		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.VAR {
				continue
			}

			for _, spec := range genDecl.Specs {
				valueSpec, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				for _, name := range valueSpec.Names {
					checkName(pass, name)
				}
			}
		}
	}
	return nil, nil
}

func checkName(pass *analysis.Pass, name *ast.Ident) {
	if name.Name == "_" {
		return
	}

	obj := pass.TypesInfo.Defs[name]
	if obj == nil {
		return
	}

	switch obj.Type().Underlying().(type) {
	case *types.Slice:
		pass.Reportf(name.Pos(), "package-level slice %q is shared mutable state", name.Name)
	case *types.Map:
		pass.Reportf(name.Pos(), "package-level map %q is shared mutable state", name.Name)
	}
}

func isGoBuildCacheFile(path string) bool {
	path = filepath.ToSlash(path)
	return strings.Contains(path, "/go-build/")
}
