package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"tinygo.org/x/tinyfs"
	"tinygo.org/x/tinyfs/littlefs"

	"github.com/barrettotte/memento-mori/internal/storage"
)

func mount(t *testing.T) *littlefs.LFS {
	t.Helper()
	dev := tinyfs.NewMemoryDevice(64, 4096, 32)
	lfs, err := storage.Mount(dev, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return lfs
}

func writeRaw(t *testing.T, lfs *littlefs.LFS, data string) {
	t.Helper()
	f, err := lfs.OpenFile(Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	// littlefs cannot take a zero-length write; an empty record is just
	// created and closed
	if data != "" {
		if _, err := f.Write([]byte(data)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore(mount(t))
	tests := []Config{
		Default(),
		{UTCOffset: 5.75, Birth: 0, Death: 1},
		{UTCOffset: MinUTC, Birth: -86400, Death: 4102444800},
		{UTCOffset: MaxUTC, Birth: 3345123600, Death: 820515600},
	}
	for _, want := range tests {
		if err := s.Save(want); err != nil {
			t.Fatalf("Save(%+v): %v", want, err)
		}
		got, err := s.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got != want {
			t.Fatalf("Load = %+v, want %+v", got, want)
		}
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	lfs := mount(t)
	s := NewStore(lfs)
	if err := s.Save(Default()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := lfs.Stat(Path + ".tmp"); err == nil {
		t.Fatal("temp file left behind")
	}
}

func TestLoadMissing(t *testing.T) {
	s := NewStore(mount(t))
	got, err := s.Load()
	if err == nil {
		t.Fatal("expected error for missing record")
	}
	if got != Default() {
		t.Fatalf("Load = %+v, want defaults", got)
	}
}

func TestLoadCorrupt(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "garbage", data: "\xff\xfe not json"},
		{name: "truncated", data: `{"utc":-5,"birth":8205`},
		{name: "missing death", data: `{"utc":-5,"birth":820515600}`},
		{name: "wrong type", data: `{"utc":"east","birth":1,"death":2}`},
		{name: "fractional epoch", data: `{"utc":1,"birth":1.5,"death":2}`},
		{name: "empty", data: ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lfs := mount(t)
			writeRaw(t, lfs, tt.data)
			got, err := NewStore(lfs).Load()
			if !errors.Is(err, ErrCorrupt) {
				t.Fatalf("err = %v, want ErrCorrupt", err)
			}
			if got != Default() {
				t.Fatalf("Load = %+v, want defaults", got)
			}
		})
	}
}

func TestLoadTooLarge(t *testing.T) {
	lfs := mount(t)
	writeRaw(t, lfs, `{"utc":1,"birth":1,"death":2,"pad":"`+strings.Repeat("x", MaxSize)+`"}`)
	got, err := NewStore(lfs).Load()
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
	if got != Default() {
		t.Fatalf("Load = %+v, want defaults", got)
	}
}

func TestLoadNormalizesUTC(t *testing.T) {
	lfs := mount(t)
	writeRaw(t, lfs, `{"utc":20.1,"birth":1,"death":2}`)
	got, err := NewStore(lfs).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.UTCOffset != MaxUTC {
		t.Fatalf("UTCOffset = %v, want %v", got.UTCOffset, MaxUTC)
	}
}

func TestStepUTC(t *testing.T) {
	h := DefaultUTC
	for i := 0; i < 200; i++ {
		h = StepUTC(h, 1)
		if h < MinUTC || h > MaxUTC {
			t.Fatalf("step %d: %v out of range", i, h)
		}
	}
	if h != MaxUTC {
		t.Fatalf("h = %v, want clamp at %v", h, MaxUTC)
	}
	for i := 0; i < 200; i++ {
		h = StepUTC(h, -1)
		if rem := (h - DefaultUTC) / UTCStep; rem != float64(int(rem)) {
			t.Fatalf("step %d: %v off quarter grid", i, h)
		}
	}
	if h != MinUTC {
		t.Fatalf("h = %v, want clamp at %v", h, MinUTC)
	}
}

func TestOffsetSeconds(t *testing.T) {
	tests := map[float64]int64{
		-5:    -18000,
		5.75:  20700,
		-3.25: -11700,
		0:     0,
	}
	for h, want := range tests {
		if got := OffsetSeconds(h); got != want {
			t.Fatalf("OffsetSeconds(%v) = %d, want %d", h, got, want)
		}
	}
}
