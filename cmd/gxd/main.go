// Command gxd is the CLI front end for the GXD archive engine: argument
// parsing, progress printing, and exit codes live here, not in the core
// engine (spec §1, §6.3).
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hejhdiss/gxd"
	"github.com/hejhdiss/gxd/internal/sizeunit"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "compress":
		err = runCompress(os.Args[2:])
	case "decompress":
		err = runDecompress(os.Args[2:])
	case "seek":
		err = runSeek(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: gxd <compress|decompress|seek> [options]")
}

func runCompress(args []string) error {
	fs := flag.NewFlagSet("compress", flag.ExitOnError)
	algo := fs.String("algo", "zstd", "compression algorithm: zstd, lz4, brotli, none")
	level := fs.Int("level", 3, "zstd compression level (1-22)")
	blockSizeStr := fs.String("block-size", "1mb", `block size, e.g. "64kb", "1mb", "4gb"`)
	threads := fs.Int("threads", 0, "worker count (0 = host core count)")
	zstdRatio := fs.String("zstd-ratio", "", "not used; the zstd level is set by -level (a warning is printed when algo is not zstd)")
	fs.Parse(args)

	if fs.NArg() < 2 {
		return errors.New("compress requires <source> <archive>")
	}
	source, archivePath := fs.Arg(0), fs.Arg(1)

	if *zstdRatio != "" && *algo != "zstd" {
		fmt.Printf("Warning: --zstd-ratio is ignored for algo=%s\n", *algo)
	}

	blockSize, err := sizeunit.Parse(*blockSizeStr)
	if err != nil {
		return err
	}
	if blockSize <= 0 {
		return fmt.Errorf("block-size must be > 0, got %q", *blockSizeStr)
	}

	fmt.Printf("Compressing %s -> %s (algo=%s, block_size=%d)...\n", source, archivePath, *algo, blockSize)

	opts := gxd.CompressOptions{
		Algo:      gxd.Algo(*algo),
		Level:     *level,
		BlockSize: blockSize,
		Threads:   *threads,
		Progress:  printProgress("compress"),
	}
	if err := gxd.Compress(source, archivePath, opts); err != nil {
		return err
	}
	fmt.Println("Done.")
	return nil
}

func runDecompress(args []string) error {
	fs := flag.NewFlagSet("decompress", flag.ExitOnError)
	threads := fs.Int("threads", 0, "worker count (0 = host core count)")
	verify := fs.Bool("verify", true, "verify per-block and global digests")
	fs.Parse(args)

	if fs.NArg() < 2 {
		return errors.New("decompress requires <archive> <output>")
	}
	archivePath, outPath := fs.Arg(0), fs.Arg(1)

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	fmt.Printf("Decompressing %s -> %s...\n", archivePath, outPath)
	opts := gxd.DecompressOptions{
		Threads:      *threads,
		VerifyBlocks: *verify,
		Progress:     printProgress("decompress"),
	}
	if err := gxd.Decompress(archivePath, out, opts); err != nil {
		return err
	}
	fmt.Println("Done.")
	return nil
}

func runSeek(args []string) error {
	fs := flag.NewFlagSet("seek", flag.ExitOnError)
	offset := fs.Int64("offset", 0, "logical start offset")
	length := fs.Int64("length", -1, "logical length; negative means to end of payload")
	threads := fs.Int("threads", 0, "worker count (0 = host core count)")
	verify := fs.Bool("verify", false, "verify per-block digests of decoded blocks")
	fs.Parse(args)

	if fs.NArg() < 2 {
		return errors.New("seek requires <archive> <output>")
	}
	archivePath, outPath := fs.Arg(0), fs.Arg(1)

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	var lengthPtr *int64
	if *length >= 0 {
		lengthPtr = length
	}

	if lengthPtr != nil {
		fmt.Printf("Seeking %s [%d, +%d) -> %s...\n", archivePath, *offset, *length, outPath)
	} else {
		fmt.Printf("Seeking %s [%d, end-of-payload) -> %s...\n", archivePath, *offset, outPath)
	}
	opts := gxd.SeekOptions{
		Offset:       *offset,
		Length:       lengthPtr,
		Threads:      *threads,
		VerifyBlocks: *verify,
		Progress:     printProgress("seek"),
	}
	if err := gxd.Seek(archivePath, out, opts); err != nil {
		return err
	}
	fmt.Println("Done.")
	return nil
}

func printProgress(phase string) gxd.Progress {
	return func(ev gxd.BlockEvent) {
		fmt.Printf("[%d/%d] %s block %d\n", ev.ID+1, ev.Total, phase, ev.ID)
	}
}
