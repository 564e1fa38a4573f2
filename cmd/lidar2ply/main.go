// lidar2ply converts ESRI ASCII-grid LiDAR rasters into PLY point clouds or
// triangle meshes, optionally colorized by a co-registered overlay image.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cartolab/plymesh"
	"github.com/cartolab/plymesh/format"
)

var (
	inputFile  string
	imageFile  string
	listFile   string
	outputFile string
	xOffset    float64
	yOffset    float64
	zOffset    float64
	meshOut    bool
	formatName string
)

func main() {
	root := &cobra.Command{
		Use:   "lidar2ply",
		Short: "Convert LiDAR height grids to PLY",
		Long: `lidar2ply converts ESRI ASCII-grid LiDAR rasters to PLY point clouds.

A single grid is converted with --input, optionally colorized with --image
(ImageMagick text dump or PNG of matching dimensions). A mosaic of tiles is
converted with --list, a text file naming one grid and optional image per
line; tiles are aligned to their common lower-left corner.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().StringVarP(&inputFile, "input", "f", "", "LiDAR grid file")
	root.Flags().StringVarP(&imageFile, "image", "i", "", "image overlay for --input")
	root.Flags().StringVarP(&listFile, "list", "l", "", "list file of grid/image pairs")
	root.Flags().StringVarP(&outputFile, "output", "o", "", "output PLY path (default <input>.ply)")
	root.Flags().Float64VarP(&xOffset, "x-offset", "x", 0, "X axis offset")
	root.Flags().Float64VarP(&yOffset, "y-offset", "y", 0, "Y axis offset")
	root.Flags().Float64VarP(&zOffset, "z-offset", "z", 0, "Z axis offset")
	root.Flags().BoolVarP(&meshOut, "mesh", "m", false, "emit a triangle mesh")
	root.Flags().StringVar(&formatName, "format", "binary_little_endian", "output PLY format")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lidar2ply:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if (inputFile == "") == (listFile == "") {
		return errors.New("exactly one of --input or --list is required")
	}

	f, err := format.ParseFormat(formatName)
	if err != nil {
		return err
	}

	opts := plymesh.GridOptions{
		XOffset: xOffset,
		YOffset: yOffset,
		ZOffset: zOffset,
		Mesh:    meshOut,
		Format:  f,
	}

	if listFile != "" {
		out := outputFile
		if out == "" {
			out = listFile + ".ply"
		}
		fmt.Printf("Converting tiles from %s\n", listFile)
		if err := plymesh.ConvertList(listFile, out, opts); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", out)

		return nil
	}

	out := outputFile
	if out == "" {
		out = inputFile + ".ply"
	}
	fmt.Printf("Converting %s\n", inputFile)
	if err := plymesh.ConvertGrid(inputFile, imageFile, out, opts); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", out)

	return nil
}
