package asr

import (
	"encoding/binary"
	"fmt"
	"os"
)

// readWAVSamples reads a 16-bit PCM WAV file into the float32 samples the
// in-process backend expects. Inputs come from the media package as 16 kHz
// mono pcm_s16le, so only that layout is handled.
func readWAVSamples(path string) ([]float32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) < 44 || string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE file: %s", path)
	}
	off := 12
	for off+8 <= len(raw) {
		id := string(raw[off : off+4])
		size := int(binary.LittleEndian.Uint32(raw[off+4 : off+8]))
		body := off + 8
		if body+size > len(raw) {
			size = len(raw) - body
		}
		if id == "data" {
			return pcm16ToFloat32(raw[body : body+size])
		}
		if size%2 == 1 {
			size++ // chunks are word-aligned
		}
		off = body + size
	}
	return nil, fmt.Errorf("no data chunk in %s", path)
}

func pcm16ToFloat32(data []byte) ([]float32, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("data length must be even for 16-bit audio")
	}
	floats := make([]float32, len(data)/2)
	for i := range floats {
		sample := int16(data[i*2]) | int16(data[i*2+1])<<8
		floats[i] = float32(sample) / 32768.0
	}
	return floats, nil
}
