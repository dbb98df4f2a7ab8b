package asr

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeTestWAV writes a minimal 16 kHz mono pcm_s16le WAV containing the
// given samples and returns its path.
func writeTestWAV(t *testing.T, samples []int16) string {
	t.Helper()
	var data bytes.Buffer
	for _, s := range samples {
		if err := binary.Write(&data, binary.LittleEndian, s); err != nil {
			t.Fatalf("write sample: %v", err)
		}
	}
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+data.Len()))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))     // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1))     // mono
	binary.Write(&buf, binary.LittleEndian, uint32(16000)) // sample rate
	binary.Write(&buf, binary.LittleEndian, uint32(32000)) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))     // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))    // bits per sample
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(data.Len()))
	buf.Write(data.Bytes())

	p := filepath.Join(t.TempDir(), "test.wav")
	if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	return p
}

func TestReadWAVSamples(t *testing.T) {
	in := []int16{0, 16384, -16384, 32767, -32768}
	p := writeTestWAV(t, in)
	got, err := readWAVSamples(p)
	if err != nil {
		t.Fatalf("readWAVSamples: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("got %d samples, want %d", len(got), len(in))
	}
	for i, s := range in {
		want := float32(s) / 32768.0
		if math.Abs(float64(got[i]-want)) > 1e-6 {
			t.Fatalf("sample %d: got %v, want %v", i, got[i], want)
		}
	}
}

func TestReadWAVSamplesNotWAV(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bogus.wav")
	if err := os.WriteFile(p, []byte("this is not audio at all, just text"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := readWAVSamples(p); err == nil {
		t.Fatal("expected error for non-WAV input")
	}
}

func TestReadWAVSamplesMissing(t *testing.T) {
	if _, err := readWAVSamples(filepath.Join(t.TempDir(), "nope.wav")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPCM16ToFloat32OddLength(t *testing.T) {
	if _, err := pcm16ToFloat32([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for odd byte count")
	}
}
