// plyedit inspects and edits PLY files: format conversion, scaling,
// recolouring, and boundary-hole detection and filling.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cartolab/plymesh"
	"github.com/cartolab/plymesh/format"
	"github.com/cartolab/plymesh/mesh"
)

func main() {
	root := &cobra.Command{
		Use:           "plyedit",
		Short:         "Inspect and edit PLY files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(infoCmd())
	root.AddCommand(convertCmd())
	root.AddCommand(scaleCmd())
	root.AddCommand(colorCmd())
	root.AddCommand(holesCmd())
	root.AddCommand(fillCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "plyedit:", err)
		os.Exit(1)
	}
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print header, counts, bounding box, and content digest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := plymesh.Load(args[0])
			if err != nil {
				return err
			}

			fmt.Print(m.HeaderText())
			fmt.Printf("vertices: %d\n", m.VertexCount())
			fmt.Printf("faces: %d\n", m.FaceCount())

			if m.VertexCount() > 0 {
				box, err := m.BoundingBox()
				if err != nil {
					return err
				}
				fmt.Printf("bounds: x [%g, %g] y [%g, %g] z [%g, %g]\n",
					box.MinX, box.MaxX, box.MinY, box.MaxY, box.MinZ, box.MaxZ)
			}

			digest, err := plymesh.FileDigest(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("xxh64: %016x\n", digest)

			return nil
		},
	}
}

func convertCmd() *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Rewrite a PLY file in another format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := format.ParseFormat(formatName)
			if err != nil {
				return err
			}

			m, err := plymesh.Load(args[0])
			if err != nil {
				return err
			}
			if err := m.SetFormat(f); err != nil {
				return err
			}

			return plymesh.Save(args[1], m)
		},
	}
	cmd.Flags().StringVar(&formatName, "format", "binary_little_endian", "target PLY format")

	return cmd
}

func scaleCmd() *cobra.Command {
	var sx, sy, sz float64

	cmd := &cobra.Command{
		Use:   "scale <in> <out>",
		Short: "Multiply vertex coordinates by per-axis factors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := plymesh.Load(args[0])
			if err != nil {
				return err
			}
			if err := m.Scale(sx, sy, sz); err != nil {
				return err
			}

			return plymesh.Save(args[1], m)
		},
	}
	cmd.Flags().Float64VarP(&sx, "x-scale", "x", 1, "X axis factor")
	cmd.Flags().Float64VarP(&sy, "y-scale", "y", 1, "Y axis factor")
	cmd.Flags().Float64VarP(&sz, "z-scale", "z", 1, "Z axis factor")

	return cmd
}

func colorCmd() *cobra.Command {
	var red, green, blue uint8
	var vertex int

	cmd := &cobra.Command{
		Use:   "color <in> <out>",
		Short: "Set vertex colours, adding colour properties if absent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := plymesh.Load(args[0])
			if err != nil {
				return err
			}

			if vertex >= 0 {
				err = m.SetVertexColor(vertex, red, green, blue)
			} else {
				err = m.SetAllVertexColors(red, green, blue)
			}
			if err != nil {
				return err
			}

			return plymesh.Save(args[1], m)
		},
	}
	cmd.Flags().Uint8VarP(&red, "red", "r", 0, "red value (0-255)")
	cmd.Flags().Uint8VarP(&green, "green", "g", 0, "green value (0-255)")
	cmd.Flags().Uint8VarP(&blue, "blue", "b", 0, "blue value (0-255)")
	cmd.Flags().IntVar(&vertex, "vertex", -1, "single vertex index (default all vertices)")

	return cmd
}

func holesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "holes <file>",
		Short: "List the mesh's boundary loops",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := plymesh.Load(args[0])
			if err != nil {
				return err
			}

			holes, err := mesh.Holes(m)
			if err != nil {
				return err
			}

			fmt.Printf("%d hole(s)\n", len(holes))
			for i, hole := range holes {
				fmt.Printf("  %d: %d vertices %v\n", i, len(hole), hole)
			}

			return nil
		},
	}
}

func fillCmd() *cobra.Command {
	var mode string
	var percent float64

	cmd := &cobra.Command{
		Use:   "fill <in> <out>",
		Short: "Close every boundary loop with a fan or an extruded base",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := plymesh.Load(args[0])
			if err != nil {
				return err
			}

			holes, err := mesh.Holes(m)
			if err != nil {
				return err
			}

			for _, hole := range holes {
				switch mode {
				case "fan":
					err = mesh.FillFan(m, hole)
				case "base":
					err = mesh.FillBase(m, hole, percent)
				default:
					return fmt.Errorf("unknown fill mode %q (want fan or base)", mode)
				}
				if err != nil {
					return err
				}
			}
			fmt.Printf("filled %d hole(s)\n", len(holes))

			return plymesh.Save(args[1], m)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "fan", "fill mode: fan or base")
	cmd.Flags().Float64Var(&percent, "percent", 10, "base depth as a percentage of model height")

	return cmd
}
