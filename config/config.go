package config

import (
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/murkland/corevideo/cv"
	"github.com/murkland/corevideo/mtl"
)

// Duration is a time.Duration written as a Go duration string, e.g. "1.5s".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	if v < 0 {
		return fmt.Errorf("negative duration: %s", string(text))
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

type Pool struct {
	MinimumBufferCount int
	MaximumBufferAge   Duration
}

type Buffer struct {
	Width              int
	Height             int
	Target             uint32
	InternalFormat     uint32
	MaximumMipmapLevel int
}

type MetalTexture struct {
	Usage mtl.TextureUsage
	// StorageMode is left to the texture cache when empty.
	StorageMode string
}

type Probe struct {
	// Buffers is how many buffers to vend from the pool.
	Buffers int
}

type Log struct {
	Development bool
}

type Config struct {
	Pool         Pool
	Buffer       Buffer
	MetalTexture MetalTexture
	Probe        Probe
	Log          Log
}

func Default() Config {
	return Config{
		Pool: Pool{
			MinimumBufferCount: 2,
			MaximumBufferAge:   Duration(time.Second),
		},
		Buffer: Buffer{
			Width:  1280,
			Height: 720,
		},
		MetalTexture: MetalTexture{
			Usage: mtl.TextureUsageShaderRead,
		},
		Probe: Probe{
			Buffers: 4,
		},
	}
}

func (c Config) Validate() error {
	if c.Pool.MinimumBufferCount < 0 {
		return fmt.Errorf("pool: negative minimum buffer count: %d", c.Pool.MinimumBufferCount)
	}
	if c.Buffer.Width <= 0 || c.Buffer.Height <= 0 {
		return fmt.Errorf("buffer: invalid size %dx%d", c.Buffer.Width, c.Buffer.Height)
	}
	if c.Probe.Buffers < 0 {
		return fmt.Errorf("probe: negative buffer count: %d", c.Probe.Buffers)
	}
	if _, err := c.MetalTexture.storageMode(); err != nil {
		return fmt.Errorf("metal texture: %w", err)
	}
	return nil
}

func (c Pool) Attributes() cv.OpenGLBufferPoolAttributes {
	return cv.OpenGLBufferPoolAttributes{
		MinimumBufferCount: c.MinimumBufferCount,
		MaximumBufferAge:   time.Duration(c.MaximumBufferAge),
	}
}

func (c Buffer) Attributes() cv.OpenGLBufferAttributes {
	return cv.OpenGLBufferAttributes{
		Width:              c.Width,
		Height:             c.Height,
		Target:             c.Target,
		InternalFormat:     c.InternalFormat,
		MaximumMipmapLevel: c.MaximumMipmapLevel,
	}
}

func (c MetalTexture) storageMode() (*mtl.StorageMode, error) {
	if c.StorageMode == "" {
		return nil, nil
	}
	var mode mtl.StorageMode
	if err := mode.UnmarshalText([]byte(c.StorageMode)); err != nil {
		return nil, err
	}
	return &mode, nil
}

func (c MetalTexture) Attributes() (cv.MetalTextureAttributes, error) {
	mode, err := c.storageMode()
	if err != nil {
		return cv.MetalTextureAttributes{}, err
	}
	return cv.MetalTextureAttributes{Usage: c.Usage, StorageMode: mode}, nil
}

func Save(config Config, w io.Writer) error {
	return toml.NewEncoder(w).Encode(config)
}

func Load(r io.Reader) (Config, error) {
	c := Default()

	if _, err := toml.NewDecoder(r).Decode(&c); err != nil {
		return c, err
	}

	if err := c.Validate(); err != nil {
		return c, err
	}

	return c, nil
}
