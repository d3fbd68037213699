package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

const (
	wavFormatPCM   = 1
	wavFormatFloat = 3
)

// ReadWAV decodes a RIFF/WAVE stream into a mono clip. 16-bit PCM and
// 32-bit float data are supported; stereo input is downmixed by averaging
// channels.
func ReadWAV(r io.Reader) (*Clip, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("%w: short RIFF header", ErrUnsupportedWAV)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%w: not a RIFF/WAVE stream", ErrUnsupportedWAV)
	}

	var (
		format     uint16
		channels   uint16
		sampleRate uint32
		bitDepth   uint16
		haveFmt    bool
	)

	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("%w: no data chunk", ErrUnsupportedWAV)
			}
			return nil, fmt.Errorf("read chunk header: %w", err)
		}
		id := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch id {
		case "fmt ":
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, fmt.Errorf("read fmt chunk: %w", err)
			}
			if size < 16 {
				return nil, fmt.Errorf("%w: fmt chunk too small", ErrUnsupportedWAV)
			}
			format = binary.LittleEndian.Uint16(body[0:2])
			channels = binary.LittleEndian.Uint16(body[2:4])
			sampleRate = binary.LittleEndian.Uint32(body[4:8])
			bitDepth = binary.LittleEndian.Uint16(body[14:16])
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("%w: data chunk before fmt", ErrUnsupportedWAV)
			}
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, fmt.Errorf("read data chunk: %w", err)
			}
			return decodeWAVData(body, format, channels, int(sampleRate), bitDepth)
		default:
			// Skip unknown chunks (LIST, fact, ...). Chunks are word aligned.
			skip := int64(size)
			if size%2 == 1 {
				skip++
			}
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				return nil, fmt.Errorf("skip %s chunk: %w", id, err)
			}
		}
	}
}

// ReadWAVFile decodes a WAV file from disk.
func ReadWAVFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav file: %w", err)
	}
	defer f.Close()
	return ReadWAV(f)
}

func decodeWAVData(body []byte, format, channels uint16, sampleRate int, bitDepth uint16) (*Clip, error) {
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedWAV, channels)
	}

	var samples []float64
	switch {
	case format == wavFormatPCM && bitDepth == 16:
		frameSize := 2 * int(channels)
		frames := len(body) / frameSize
		samples = make([]float64, 0, frames)
		for i := 0; i < frames; i++ {
			sum := 0.0
			for ch := 0; ch < int(channels); ch++ {
				off := i*frameSize + ch*2
				v := int16(binary.LittleEndian.Uint16(body[off : off+2]))
				sum += float64(v) / 32768.0
			}
			samples = append(samples, sum/float64(channels))
		}
	case format == wavFormatFloat && bitDepth == 32:
		frameSize := 4 * int(channels)
		frames := len(body) / frameSize
		samples = make([]float64, 0, frames)
		for i := 0; i < frames; i++ {
			sum := 0.0
			for ch := 0; ch < int(channels); ch++ {
				off := i*frameSize + ch*4
				bits := binary.LittleEndian.Uint32(body[off : off+4])
				sum += float64(math.Float32frombits(bits))
			}
			samples = append(samples, sum/float64(channels))
		}
	default:
		return nil, fmt.Errorf("%w: format %d, %d-bit", ErrUnsupportedWAV, format, bitDepth)
	}

	return NewClip(samples, sampleRate)
}
