package rawvideo

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"hash"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"

	"github.com/opd-ai/vidbuf/video"
)

const (
	magic      = "RVF1"
	headerSize = len(magic) + 4*4

	// MaxSamples bounds the volume a file header may declare so a
	// corrupt header cannot trigger an arbitrarily large allocation.
	MaxSamples = 1 << 30

	// chunkSamples is the number of samples converted per I/O call.
	chunkSamples = 4096
)

// CompressedSuffix marks raw video files stored with zstd compression.
const CompressedSuffix = ".zst"

func newChecksum() hash.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		// Only a key longer than 64 bytes can fail.
		panic(err)
	}
	return h
}

// Write encodes v to w as a raw video dump.
func Write(w io.Writer, v *video.Video) error {
	sz := v.Size()
	bw := bufio.NewWriter(w)

	var hdr [headerSize]byte
	copy(hdr[:], magic)
	dims := [4]int{sz.Width, sz.Height, sz.Frames, sz.Channels}
	for i, d := range dims {
		binary.LittleEndian.PutUint32(hdr[len(magic)+4*i:], uint32(d))
	}
	if _, err := bw.Write(hdr[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	sum := newChecksum()
	out := io.MultiWriter(bw, sum)
	buf := make([]byte, 4*chunkSamples)
	data := v.Data()
	for start := 0; start < len(data); start += chunkSamples {
		end := min(start+chunkSamples, len(data))
		n := 0
		for _, s := range data[start:end] {
			binary.LittleEndian.PutUint32(buf[n:], math.Float32bits(s))
			n += 4
		}
		if _, err := out.Write(buf[:n]); err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
	}

	if _, err := bw.Write(sum.Sum(nil)); err != nil {
		return fmt.Errorf("write checksum: %w", err)
	}
	return bw.Flush()
}

// Read decodes a raw video dump from r.
func Read(r io.Reader) (*video.Video, error) {
	br := bufio.NewReader(r)

	var hdr [headerSize]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, readError("header", err)
	}
	if string(hdr[:len(magic)]) != magic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadMagic, hdr[:len(magic)])
	}

	var dims [4]uint64
	volume := uint64(1)
	for i := range dims {
		dims[i] = uint64(binary.LittleEndian.Uint32(hdr[len(magic)+4*i:]))
		volume *= dims[i]
		if volume > MaxSamples {
			return nil, fmt.Errorf("%w: header declares more than %d samples", ErrTooLarge, MaxSamples)
		}
	}

	v := video.New(video.NewSize(int(dims[0]), int(dims[1]), int(dims[2]), int(dims[3])))
	sum := newChecksum()
	buf := make([]byte, 4*chunkSamples)
	data := v.Data()
	for start := 0; start < len(data); start += chunkSamples {
		end := min(start+chunkSamples, len(data))
		chunk := buf[:4*(end-start)]
		if _, err := io.ReadFull(br, chunk); err != nil {
			return nil, readError("samples", err)
		}
		sum.Write(chunk)
		for i := range data[start:end] {
			data[start+i] = math.Float32frombits(binary.LittleEndian.Uint32(chunk[4*i:]))
		}
	}

	want := make([]byte, blake2b.Size256)
	if _, err := io.ReadFull(br, want); err != nil {
		return nil, readError("checksum", err)
	}
	if !bytes.Equal(want, sum.Sum(nil)) {
		return nil, ErrChecksum
	}
	return v, nil
}

func readError(part string, err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: reading %s", ErrTruncated, part)
	}
	return fmt.Errorf("read %s: %w", part, err)
}

// WriteFile stores v at path, compressing with zstd when path ends in
// CompressedSuffix.
func WriteFile(path string, v *video.Video) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create raw video file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close raw video file: %w", cerr)
		}
	}()

	if strings.HasSuffix(path, CompressedSuffix) {
		enc, err := zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("create zstd writer: %w", err)
		}
		if err := Write(enc, v); err != nil {
			enc.Close()
			return err
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("finish zstd stream: %w", err)
		}
	} else if err := Write(f, v); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function": "WriteFile",
		"path":     path,
		"size":     v.Size().String(),
	}).Info("Raw video file written")
	return nil
}

// ReadFile loads a buffer written by WriteFile.
func ReadFile(path string) (*video.Video, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw video file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, CompressedSuffix) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("create zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	v, err := Read(r)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "ReadFile",
			"path":     path,
			"error":    err.Error(),
		}).Error("Failed to read raw video file")
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "ReadFile",
		"path":     path,
		"size":     v.Size().String(),
	}).Info("Raw video file read")
	return v, nil
}
