package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/df07/go-skin-raytracer/pkg/loaders"
	"github.com/df07/go-skin-raytracer/pkg/logger"
	"github.com/df07/go-skin-raytracer/pkg/scene"
	"github.com/df07/go-skin-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	sceneFile := flag.String("scene", "", "YAML scene description (default: built-in character)")
	skinFile := flag.String("skin", "", "Character skin PNG")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Optional rotating log file")
	flag.Parse()

	if err := logger.Init(*logLevel, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sc, err := loadScene(*sceneFile, *skinFile)
	if err != nil {
		logger.Log.Error("failed to load scene", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	webServer := server.NewServer(*port, sc, logger.Named("web"))

	logger.Log.Info("skin raytracer preview server",
		zap.String("url", fmt.Sprintf("http://localhost:%d", *port)),
		zap.Int("meshes", len(sc.Meshes)),
	)

	if err := webServer.Start(); err != nil {
		logger.Log.Error("server stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func loadScene(sceneFile, skinFile string) (*scene.Scene, error) {
	switch {
	case skinFile != "":
		skin, err := loaders.LoadSkin(skinFile)
		if err != nil {
			return nil, err
		}
		return skin.Scene(), nil
	case sceneFile != "":
		return loaders.LoadSceneFile(sceneFile)
	default:
		return scene.NewDefaultScene(), nil
	}
}
