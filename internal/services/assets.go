package services

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AssetGenerator produces a companion 3D preview asset for a phone model.
// External capability; the core never builds meshes itself.
type AssetGenerator interface {
	Generate(ctx context.Context, brand, model, outPath string) error
}

// AssetJobManager runs preview generation as fire-and-forget background
// work. Jobs are idempotent (an existing target file is never regenerated)
// and their errors are logged, never propagated: the scoring request path
// must not block or fail because of a side asset.
type AssetJobManager struct {
	generator AssetGenerator
	dir       string
	timeout   time.Duration
	logger    *logrus.Logger
}

func NewAssetJobManager(generator AssetGenerator, dir string, logger *logrus.Logger) *AssetJobManager {
	return &AssetJobManager{
		generator: generator,
		dir:       dir,
		timeout:   5 * time.Minute,
		logger:    logger,
	}
}

// EnqueuePreview kicks off generation for one phone model and returns the
// job ID immediately.
func (m *AssetJobManager) EnqueuePreview(brand, model string) uuid.UUID {
	jobID := uuid.New()

	go func() {
		log := m.logger.WithFields(logrus.Fields{
			"job_id": jobID,
			"brand":  brand,
			"model":  model,
		})

		outPath := filepath.Join(m.dir, assetSlug(brand, model)+".glb")
		if _, err := os.Stat(outPath); err == nil {
			log.Debug("Preview asset already exists, skipping")
			return
		}

		if err := os.MkdirAll(m.dir, 0o755); err != nil {
			log.WithError(err).Warn("Failed to create preview asset directory")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		if err := m.generator.Generate(ctx, brand, model, outPath); err != nil {
			log.WithError(err).Warn("Preview asset generation failed")
			return
		}
		log.Info("Preview asset generated")
	}()

	return jobID
}

var assetSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func assetSlug(brand, model string) string {
	s := strings.ToLower(brand + " " + model)
	return strings.Trim(assetSlugPattern.ReplaceAllString(s, "-"), "-")
}

// CommandAssetGenerator shells out to an external pipeline (e.g. the
// depth-estimation/mesh toolchain) to build the asset.
type CommandAssetGenerator struct {
	command string
	args    []string
	logger  *logrus.Logger
}

func NewCommandAssetGenerator(command string, logger *logrus.Logger) *CommandAssetGenerator {
	fields := strings.Fields(command)
	g := &CommandAssetGenerator{logger: logger}
	if len(fields) > 0 {
		g.command = fields[0]
		g.args = fields[1:]
	}
	return g
}

func (g *CommandAssetGenerator) Generate(ctx context.Context, brand, model, outPath string) error {
	if g.command == "" {
		return fmt.Errorf("no asset command configured")
	}

	args := append(append([]string{}, g.args...), "--brand", brand, "--model", model, "--out", outPath)
	cmd := exec.CommandContext(ctx, g.command, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("asset command failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
