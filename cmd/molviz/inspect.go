package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Faultbox/molviz/internal/geometry"
	"github.com/Faultbox/molviz/internal/scene"
	"github.com/Faultbox/molviz/internal/wire"
)

func cmdInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	depth := fs.Int("depth", 0, "Print this many tree levels (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: molviz inspect <name.json>")
		os.Exit(1)
	}

	lib, buf, err := wire.ReadFiles(fs.Arg(0))
	if err != nil {
		fatalf("%v", err)
	}
	res, err := wire.Deserialize(lib, buf)
	if err != nil {
		fatalf("%v", err)
	}
	t := res.Tree

	sum := geometry.Summarize(t)
	bounds := scene.TreeBounds(t)
	fmt.Printf("Scene:     %s\n", fs.Arg(0))
	fmt.Printf("Nodes:     %d\n", t.Len())
	fmt.Printf("Meshes:    %d\n", sum.Meshes)
	fmt.Printf("Vertices:  %d\n", sum.Vertices)
	fmt.Printf("Materials: %d\n", sum.Materials)
	fmt.Printf("Buffer:    %.2f KB\n", float64(len(buf))/1024)
	fmt.Printf("Radius:    %.3f\n", scene.Radius(t))
	if !bounds.IsEmpty() {
		fmt.Printf("Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
			bounds.Min.X, bounds.Min.Y, bounds.Min.Z, bounds.Max.X, bounds.Max.Y, bounds.Max.Z)
	}
	fmt.Println()

	t.Walk(t.Root(), func(i scene.NodeIndex, d int) bool {
		n := t.Node(i)
		line := strings.Repeat("  ", d) + n.Name
		if n.Mesh != nil {
			line += fmt.Sprintf("  [%d vertices, %s]", n.Mesh.Geometry.VertexCount(), n.Mesh.Material.Color)
		}
		fmt.Println(line)
		return *depth == 0 || d+1 < *depth
	})

	if len(res.Skipped) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d parts skipped:\n", len(res.Skipped))
		for _, e := range res.Skipped {
			fmt.Fprintf(os.Stderr, "  %v\n", e)
		}
	}
}
