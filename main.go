package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/df07/go-skin-raytracer/pkg/config"
	"github.com/df07/go-skin-raytracer/pkg/loaders"
	"github.com/df07/go-skin-raytracer/pkg/logger"
	"github.com/df07/go-skin-raytracer/pkg/renderer"
	"github.com/df07/go-skin-raytracer/pkg/scene"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger.Log); err != nil {
		logger.Log.Error("render failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// run renders the configured scene and writes the PNG. Tile failures still
// produce an image but are returned as an error.
func run(cfg *config.Config, log *zap.Logger) error {
	renderCfg, err := cfg.ToRenderConfig()
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	sc, err := createScene(cfg.Scene)
	if err != nil {
		return err
	}
	log.Info("scene ready",
		zap.String("source", sceneSource(cfg.Scene)),
		zap.Int("meshes", len(sc.Meshes)),
		zap.Int("triangles", sc.TriangleCount()),
	)

	r := renderer.NewRenderer(log.Named("renderer"))
	result := r.Render(sc, renderCfg, progressLogger(log))

	if err := loaders.WritePNG(cfg.Output.Path, result.Image, cfg.Output.Scale); err != nil {
		return err
	}
	log.Info("image saved",
		zap.String("path", cfg.Output.Path),
		zap.Int("scale", cfg.Output.Scale),
		zap.Duration("render_time", result.Stats.Duration),
	)

	if err := result.Err(); err != nil {
		return errors.Wrapf(err, "%d of %d tiles failed", result.Stats.FailedTiles, result.Stats.TotalTiles)
	}
	return nil
}

// createScene builds the character from a skin or a YAML scene description,
// or the plain white character when neither is configured
func createScene(cfg config.SceneConfig) (*scene.Scene, error) {
	switch {
	case cfg.Skin != "":
		skin, err := loaders.LoadSkin(cfg.Skin)
		if err != nil {
			return nil, err
		}
		return skin.Scene(), nil
	case cfg.File != "":
		return loaders.LoadSceneFile(cfg.File)
	default:
		return scene.NewDefaultScene(), nil
	}
}

func sceneSource(cfg config.SceneConfig) string {
	switch {
	case cfg.Skin != "":
		return cfg.Skin
	case cfg.File != "":
		return cfg.File
	default:
		return "default"
	}
}

// progressLogger reports completion in 10% steps
func progressLogger(log *zap.Logger) renderer.ProgressFunc {
	lastDecile := 0
	return func(done, total int) {
		decile := done * 10 / total
		if decile > lastDecile {
			lastDecile = decile
			log.Info("render progress", zap.Int("tiles_done", done), zap.Int("tiles_total", total))
		}
	}
}
