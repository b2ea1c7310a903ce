package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/murkland/corevideo/cf"
	"github.com/murkland/corevideo/config"
	"github.com/murkland/corevideo/cv"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	configPath  = flag.String("config_path", "cvprobe.toml", "path to config")
	buffers     = flag.Int("buffers", -1, "number of buffers to vend, overriding the config")
	development = flag.Bool("development", false, "use the development logger")
)

func loadConfig(path string) (config.Config, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return config.Config{}, false, err
		}
		f, err = os.Create(path)
		if err != nil {
			return config.Config{}, false, err
		}
		defer f.Close()
		conf := config.Default()
		if err := config.Save(conf, f); err != nil {
			return config.Config{}, false, err
		}
		return conf, true, nil
	}
	defer f.Close()

	conf, err := config.Load(f)
	if err != nil {
		return config.Config{}, false, err
	}
	return conf, false, nil
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func dumpDictionary(w io.Writer, name string, d *cf.Dictionary) {
	entries := map[string]string{}
	for _, p := range d.Pairs() {
		entries[p.Key.Description()] = p.Value.Description()
		p.Release()
	}

	keys := maps.Keys(entries)
	slices.Sort(keys)

	fmt.Fprintf(w, "%s:\n", name)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s = %s\n", k, entries[k])
	}
}

func probe(w io.Writer, logger *zap.Logger, conf config.Config) error {
	texAttrs, err := conf.MetalTexture.Attributes()
	if err != nil {
		return fmt.Errorf("metal texture attributes: %w", err)
	}
	texDict, err := texAttrs.Dictionary()
	if err != nil {
		return fmt.Errorf("metal texture attributes: %w", err)
	}
	defer texDict.Release()
	dumpDictionary(w, "metal texture attributes", texDict)

	poolAttrs, err := conf.Pool.Attributes().Dictionary()
	if err != nil {
		return fmt.Errorf("pool attributes: %w", err)
	}
	defer poolAttrs.Release()

	bufAttrs, err := conf.Buffer.Attributes().Dictionary()
	if err != nil {
		return fmt.Errorf("buffer attributes: %w", err)
	}
	defer bufAttrs.Release()

	pool, err := cv.NewOpenGLBufferPool(poolAttrs, bufAttrs)
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}
	defer pool.Release()
	logger.Info("created pool", zap.Stringer("pool", pool))

	if d, ok := pool.Attributes(); ok {
		dumpDictionary(w, "pool attributes", d)
		d.Release()
	} else {
		fmt.Fprintln(w, "pool attributes: none")
	}

	if d, ok := pool.OpenGLBufferAttributes(); ok {
		dumpDictionary(w, "buffer attributes", d)
		d.Release()
	} else {
		fmt.Fprintln(w, "buffer attributes: none")
	}

	// Buffers are held until the end so the pool has to allocate each one.
	vended := make([]*cv.OpenGLBuffer, 0, conf.Probe.Buffers)
	defer func() {
		for _, buf := range vended {
			buf.Release()
		}
	}()

	for i := 0; i < conf.Probe.Buffers; i++ {
		buf, err := pool.CreateOpenGLBuffer()
		if err != nil {
			return fmt.Errorf("failed to vend buffer %d: %w", i, err)
		}
		vended = append(vended, buf)

		logger.Debug("vended buffer", zap.Int("index", i), zap.Int("retain_count", buf.RetainCount()))
		fmt.Fprintf(w, "buffer %d: encoded=%s display=%s clean=%s flipped=%t\n", i, buf.EncodedSize(), buf.DisplaySize(), buf.CleanRect(), buf.IsFlipped())
	}

	return nil
}

func main() {
	flag.Parse()

	conf, created, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %s\n", err)
		os.Exit(1)
	}
	if *buffers >= 0 {
		conf.Probe.Buffers = *buffers
	}

	logger, err := newLogger(*development || conf.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %s\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if created {
		logger.Info("config doesn't exist, made a new one", zap.String("path", *configPath))
	}
	logger.Debug("config settings", zap.Any("config", conf))

	if err := probe(os.Stdout, logger, conf); err != nil {
		logger.Fatal("probe failed", zap.Error(err))
	}
}
