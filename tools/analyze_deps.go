package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const modulePath = "github.com/foliopress/folio/"

func main() {
	deps := make(map[string][]string)
	for _, root := range []string{"internal", "pkg"} {
		collectPackages(root, deps)
	}

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
		sort.Strings(deps[name])
	}
	sort.Strings(names)

	fmt.Println("=== IMPORT GRAPH ===")
	for _, name := range names {
		if len(deps[name]) == 0 {
			fmt.Printf("\n%s imports nothing in-module\n", name)
			continue
		}
		fmt.Printf("\n%s imports:\n", name)
		for _, imp := range deps[name] {
			fmt.Printf("  -> %s\n", imp)
		}
	}

	fmt.Println("\n=== CYCLE CHECK ===")
	if !reportCycles(deps, names) {
		fmt.Println("no cycles")
	}
}

func collectPackages(root string, deps map[string][]string) {
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}

		pkg := filepath.ToSlash(filepath.Dir(path))
		if _, ok := deps[pkg]; !ok {
			deps[pkg] = nil
		}
		for _, imp := range file.Imports {
			target := strings.Trim(imp.Path.Value, `"`)
			if !strings.HasPrefix(target, modulePath) {
				continue
			}
			local := strings.TrimPrefix(target, modulePath)
			if local != pkg && !contains(deps[pkg], local) {
				deps[pkg] = append(deps[pkg], local)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("walking %s: %v", root, err)
	}
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func reportCycles(deps map[string][]string, names []string) bool {
	const (
		white = iota
		gray
		black
	)
	state := make(map[string]int)
	found := false

	var visit func(pkg string, trail []string)
	visit = func(pkg string, trail []string) {
		state[pkg] = gray
		trail = append(trail, pkg)
		for _, next := range deps[pkg] {
			switch state[next] {
			case gray:
				found = true
				fmt.Printf("CYCLE: %s -> %s\n", strings.Join(trail, " -> "), next)
			case white:
				visit(next, trail)
			}
		}
		state[pkg] = black
	}

	for _, name := range names {
		if state[name] == white {
			visit(name, nil)
		}
	}
	return found
}
