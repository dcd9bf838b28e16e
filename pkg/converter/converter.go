// Package converter orchestrates the pipeline for each input document:
// detect candidates, infer props, resolve names in the global registry, and
// render component and page sources. A batch shares one global registry and
// one asset store; the per-document registry is rebuilt for every document.
package converter

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gnana997/jsxify/pkg/assets"
	"github.com/gnana997/jsxify/pkg/detector"
	"github.com/gnana997/jsxify/pkg/dom"
	"github.com/gnana997/jsxify/pkg/format"
	"github.com/gnana997/jsxify/pkg/generator"
	"github.com/gnana997/jsxify/pkg/props"
	"github.com/gnana997/jsxify/pkg/registry"
	"github.com/gnana997/jsxify/pkg/signature"
	"github.com/gnana997/jsxify/pkg/util"
	"github.com/gnana997/jsxify/pkg/verify"
)

// Config is the converter configuration, typically loaded from
// .jsxify/config.yaml by the CLI.
type Config struct {
	MinChildren       int
	MinInstances      int
	LayoutIdentifiers []string
	SelfClosing       []string
	OutputDir         string
	AssetPrefix       string
	TypeScript        bool
	FormatCommand     string
	FormatArgs        []string
	Verify            bool
}

// DefaultConfig returns the standard thresholds and identifier list.
func DefaultConfig() Config {
	return Config{
		MinChildren:  2,
		MinInstances: 2,
		LayoutIdentifiers: []string{
			"header", "nav", "navbar", "sidebar", "footer", "hero", "main",
		},
		OutputDir:   "out",
		AssetPrefix: "../assets",
	}
}

// ComponentDef is one emitted component definition.
type ComponentDef struct {
	Name       string
	PropNames  []string
	Origin     string
	Body       string
	Source     string
	References []string
	Path       string // relative to the output dir
}

// PageDef is the call-site definition emitted for a whole document.
type PageDef struct {
	Name       string
	Body       string
	Source     string
	References []string
	Path       string
}

// DocumentResult is the output of converting one document.
type DocumentResult struct {
	Name       string
	Components []ComponentDef
	Page       PageDef
}

// Converter converts documents. The zero value is not usable; construct
// with New.
type Converter struct {
	cfg       Config
	logger    *slog.Logger
	global    *registry.Global
	store     *assets.Store
	sig       *signature.Hasher
	formatter format.Formatter
	verifier  *verify.Verifier
	cache     *util.FileCache
}

// New creates a Converter with a fresh global registry and asset store.
func New(cfg Config, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()
	if cfg.MinChildren < 1 {
		cfg.MinChildren = def.MinChildren
	}
	if cfg.MinInstances < 2 {
		cfg.MinInstances = def.MinInstances
	}
	if cfg.LayoutIdentifiers == nil {
		cfg.LayoutIdentifiers = def.LayoutIdentifiers
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = def.OutputDir
	}
	if cfg.AssetPrefix == "" {
		cfg.AssetPrefix = def.AssetPrefix
	}

	var formatter format.Formatter = format.Passthrough{}
	if cfg.FormatCommand != "" {
		formatter = format.NewPrettier(cfg.FormatCommand, cfg.FormatArgs)
	}

	var verifier *verify.Verifier
	if cfg.Verify {
		verifier = verify.New(logger)
	}

	return &Converter{
		cfg:       cfg,
		logger:    logger,
		global:    registry.NewGlobal(logger),
		store:     assets.NewStore(filepath.Join(cfg.OutputDir, "assets"), cfg.AssetPrefix, logger),
		sig:       signature.NewHasher(0, logger),
		formatter: formatter,
		verifier:  verifier,
		cache:     util.NewFileCache(logger),
	}
}

// Registry exposes the shared global registry (used by the MCP server).
func (c *Converter) Registry() *registry.Global {
	return c.global
}

// ConvertDocument converts a single parsed-from-r document. name is the
// document identifier (usually the input file base name) used to derive the
// page component name. Returns an error only for structural absence; the
// caller logs it and continues the batch.
func (c *Converter) ConvertDocument(name string, r io.Reader) (*DocumentResult, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return nil, err
	}
	body, err := dom.Body(doc)
	if err != nil {
		return nil, err
	}
	dom.NormalizeSVGAttrs(body)

	perRun := registry.NewPerRun()
	det := detector.New(detector.Config{
		MinChildren:       c.cfg.MinChildren,
		MinInstances:      c.cfg.MinInstances,
		LayoutIdentifiers: c.cfg.LayoutIdentifiers,
	}, c.sig, c.logger)

	genCfg := generator.DefaultConfig()
	genCfg.TypeScript = c.cfg.TypeScript
	for _, tag := range c.cfg.SelfClosing {
		genCfg.SelfClosing[tag] = true
	}
	ren := generator.New(genCfg, perRun, c.store, c.logger)

	result := &DocumentResult{Name: name}

	// Smallest candidates first: nested components are registered before
	// the bodies that enclose them are rendered.
	for _, cand := range det.Detect(body, perRun) {
		spec := props.Infer(cand.Template, cand.Instances, c.sig)

		// The body is rendered once; the same text feeds the fingerprint
		// and, when the component is new, the emitted definition.
		bodyText := ren.ComponentBody(cand.Template, spec)
		references := ren.TakeReferenced()

		fp := registry.Fingerprint(bodyText, spec.Names())
		finalName, isNew := c.global.Resolve(fp, cand.Name)

		if isNew {
			relPath := filepath.Join("components", finalName+ren.FileExt())
			c.global.Describe(fp, spec.Names(), relPath)
			result.Components = append(result.Components, ComponentDef{
				Name:       finalName,
				PropNames:  spec.Names(),
				Origin:     cand.Origin.String(),
				Body:       bodyText,
				Source:     ren.ComponentFile(finalName, spec, bodyText, references),
				References: references,
				Path:       relPath,
			})
			c.logger.Info("extracted component",
				"name", finalName,
				"origin", cand.Origin.String(),
				"instances", len(cand.Instances),
				"props", len(spec.Props))
		}

		perRun.Register(&registry.ComponentRef{
			Name:     finalName,
			Template: cand.Template,
			Spec:     spec,
		}, cand.Instances...)
	}

	pageName := pageComponentName(name)
	pageBody := ren.PageBody(body)
	pageRefs := ren.TakeReferenced()
	result.Page = PageDef{
		Name:       pageName,
		Body:       pageBody,
		Source:     ren.PageFile(pageName, pageBody, pageRefs),
		References: pageRefs,
		Path:       filepath.Join("pages", pageName+ren.FileExt()),
	}

	c.logger.Info("converted document",
		"document", name,
		"page", pageName,
		"components", len(result.Components),
		"references", len(pageRefs))
	return result, nil
}

// pageComponentName derives the page component name from the document name.
func pageComponentName(name string) string {
	pascal := detector.PascalCase(name)
	if pascal == "" {
		pascal = "Index"
	}
	if !strings.HasSuffix(pascal, "Page") {
		pascal += "Page"
	}
	return pascal
}
