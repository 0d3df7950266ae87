package audio

import (
	"fmt"
	"os"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
)

// SampleRate is the rate every track is resampled to.
const SampleRate = 44100

type filePlayer struct {
	*eaudio.Player
	file *os.File
}

func (p *filePlayer) Close() error {
	err := p.Player.Close()
	if cerr := p.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// NewOpener decodes mp3 files through ctx. The file stays open until the
// returned player is closed.
func NewOpener(ctx *eaudio.Context) Opener {
	return func(path string) (Player, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		stream, err := mp3.DecodeWithSampleRate(SampleRate, f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("decoding mp3: %w", err)
		}
		p, err := ctx.NewPlayer(stream)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("creating player: %w", err)
		}
		return &filePlayer{Player: p, file: f}, nil
	}
}
