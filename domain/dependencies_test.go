package domain_test

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const module = "github.com/Emurgo/node-cardano-wallet/"

// TestDomainHasNoExternalDependencies verifies that the domain layer only
// imports other domain packages and the buffer views.
func TestDomainHasNoExternalDependencies(t *testing.T) {
	fset := token.NewFileSet()
	for _, pkg := range []string{"entities", "errors", "ports"} {
		files, err := filepath.Glob(filepath.Join(".", pkg, "*.go"))
		require.NoError(t, err, "failed to glob %s files", pkg)
		require.NotEmpty(t, files, "domain/%s should contain Go files", pkg)

		for _, file := range files {
			if strings.HasSuffix(file, "_test.go") {
				continue
			}
			checkFileImports(t, fset, file, pkg)
		}
	}
}

// TestBufferIsALeaf verifies that the views depend on nothing in the module.
func TestBufferIsALeaf(t *testing.T) {
	fset := token.NewFileSet()
	files, err := filepath.Glob(filepath.Join("..", "buffer", "*.go"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		f, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
		require.NoError(t, err, "failed to parse %s", file)
		for _, imp := range f.Imports {
			path := strings.Trim(imp.Path.Value, `"`)
			assert.False(t, strings.HasPrefix(path, module),
				"buffer (%s) must not import %s", filepath.Base(file), path)
		}
	}
}

func checkFileImports(t *testing.T, fset *token.FileSet, filename, pkg string) {
	t.Helper()

	f, err := parser.ParseFile(fset, filename, nil, parser.ImportsOnly)
	require.NoError(t, err, "failed to parse %s", filename)

	for _, imp := range f.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)
		if !strings.HasPrefix(importPath, module) {
			assert.NotContains(t, importPath, ".",
				"domain/%s package (%s) must not import third-party package %s",
				pkg, filepath.Base(filename), importPath)
			continue
		}
		local := strings.TrimPrefix(importPath, module)
		assert.True(t,
			strings.HasPrefix(local, "domain/") || local == "buffer",
			"domain/%s package (%s) imports non-domain package: %s",
			pkg, filepath.Base(filename), importPath)
	}
}
