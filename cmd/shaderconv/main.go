// The shaderconv command translates one or more JSON-encoded IR programs
// (package ir's wire shape) into GLSL source text, for offline inspection
// of the translator's output without wiring up a real IR producer. It
// mirrors the teacher pack's own standalone shader-conversion tool
// (google-gapid's cmd/shadertool): read each input file, convert, and
// either print the result or write it alongside the input.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/soypat/tgsi2glsl/glsl"
	"github.com/soypat/tgsi2glsl/ir"
)

var (
	out     = flag.String("out", "", "directory for the converted GLSL files (default: print to stdout)")
	glesVer = flag.Int("gles", 0, "target GLSL ES version (e.g. 300); 0 targets desktop GLSL")
	core    = flag.Bool("core", false, "select core-profile desktop directive forms")
	patch   = flag.Bool("interp-patch", false, "run the interpolation patcher against a sibling .frag.json descriptor")
	verbose = flag.Bool("v", false, "log declaration/instruction counts for each input")
)

// request is the on-disk shape a shaderconv input file holds: the IR
// program to translate plus the caller-supplied configuration spec §6
// keeps external to the IR itself.
type request struct {
	Program ir.Program     `json:"program"`
	Key     glsl.ShaderKey `json:"key"`
}

func main() {
	flag.Parse()
	logger := slog.Default()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: shaderconv [flags] <program.json>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := glsl.Cfg{GLESVersion: *glesVer, UseCore: *core}

	status := 0
	for _, input := range args {
		if err := convertFile(cfg, input, logger); err != nil {
			logger.Error("convert failed", "file", input, "err", err)
			status = 1
		}
	}
	os.Exit(status)
}

func convertFile(cfg glsl.Cfg, input string, logger *slog.Logger) error {
	raw, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("decode %s: %w", input, err)
	}

	if *verbose {
		logger.Info("translating", "file", input, "stage", req.Program.Stage,
			"decls", len(req.Program.Decls), "instructions", len(req.Program.Instructions))
	}

	res, err := glsl.Convert(cfg, req.Key, req.Program)
	if err != nil {
		return err
	}

	source := res.Source
	if *patch && req.Program.Stage == ir.StageVertex {
		source, err = patchAgainstSibling(input, source)
		if err != nil {
			return fmt.Errorf("interpolation patch: %w", err)
		}
	}

	if *out == "" {
		fmt.Print(source)
		return nil
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return os.WriteFile(filepath.Join(*out, base+".glsl"), []byte(source), 0o666)
}

// patchAgainstSibling looks for <input-without-ext>.frag.json next to a
// vertex-stage input and, if present, decodes its ShaderInfo.Interpolants
// and runs the Interpolation Patcher (spec §4.6) against the just-produced
// vertex source.
func patchAgainstSibling(input, vertexSrc string) (string, error) {
	sibling := strings.TrimSuffix(input, filepath.Ext(input)) + ".frag.json"
	raw, err := os.ReadFile(sibling)
	if os.IsNotExist(err) {
		return vertexSrc, nil
	}
	if err != nil {
		return "", err
	}
	var interpolants []glsl.InterpolantInfo
	if err := json.Unmarshal(raw, &interpolants); err != nil {
		return "", err
	}
	return glsl.PatchInterpolation(vertexSrc, interpolants), nil
}
