package ancpipe

/*------------------------------------------------------------------
 *
 * Purpose:	Real stereo audio bus backed by PortAudio.
 *
 * Description:	Reference implementation of InputBus/OutputBus for running
 *		the pipeline against a host sound card instead of the
 *		target microcontroller's I2S buses: one stream per direction,
 *		a fixed-size interleaved scratch buffer bound at open time,
 *		blocking Read/Write calls that hand data to/from that
 *		buffer.
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

const stereoChannels = 2

// PortAudioInputBus is the reference-plus-primary capture side of the input
// bus: stereo, 32-bit signed PCM, blocking reads of full frames.
type PortAudioInputBus struct {
	blockSize int
	stream    *portaudio.Stream
	scratch   []int32
}

// NewPortAudioInputBus constructs a bus that will read blockSize
// sample-pairs per Read call once Init is called.
func NewPortAudioInputBus(blockSize int) *PortAudioInputBus {
	return &PortAudioInputBus{blockSize: blockSize}
}

func (b *PortAudioInputBus) Init(_ context.Context, sampleRate int) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("ancpipe: portaudio init: %w", err)
	}
	b.scratch = make([]int32, stereoChannels*b.blockSize)
	stream, err := portaudio.OpenDefaultStream(
		stereoChannels, 0, float64(sampleRate), b.blockSize, b.scratch)
	if err != nil {
		return fmt.Errorf("ancpipe: open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		return fmt.Errorf("ancpipe: start input stream: %w", err)
	}
	b.stream = stream
	return nil
}

// Read blocks until a full stereo frame has been captured.
func (b *PortAudioInputBus) Read(_ context.Context, buf Frame) error {
	if err := b.stream.Read(); err != nil {
		return fmt.Errorf("ancpipe: input bus read: %w", err)
	}
	copy(buf, b.scratch)
	return nil
}

func (b *PortAudioInputBus) Close() error {
	if b.stream == nil {
		return nil
	}
	if err := b.stream.Stop(); err != nil {
		return err
	}
	if err := b.stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}

// PortAudioOutputBus is the denoised-signal playback side of the output
// bus.
type PortAudioOutputBus struct {
	blockSize int
	stream    *portaudio.Stream
	scratch   []int32
}

func NewPortAudioOutputBus(blockSize int) *PortAudioOutputBus {
	return &PortAudioOutputBus{blockSize: blockSize}
}

func (b *PortAudioOutputBus) Init(_ context.Context, sampleRate int) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("ancpipe: portaudio init: %w", err)
	}
	b.scratch = make([]int32, stereoChannels*b.blockSize)
	stream, err := portaudio.OpenDefaultStream(
		0, stereoChannels, float64(sampleRate), b.blockSize, b.scratch)
	if err != nil {
		return fmt.Errorf("ancpipe: open output stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		return fmt.Errorf("ancpipe: start output stream: %w", err)
	}
	b.stream = stream
	return nil
}

// Write blocks until the full stereo frame has been handed to the device.
func (b *PortAudioOutputBus) Write(_ context.Context, buf Frame) error {
	copy(b.scratch, buf)
	if err := b.stream.Write(); err != nil {
		return fmt.Errorf("ancpipe: output bus write: %w", err)
	}
	return nil
}

func (b *PortAudioOutputBus) Close() error {
	if b.stream == nil {
		return nil
	}
	if err := b.stream.Stop(); err != nil {
		return err
	}
	if err := b.stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}
