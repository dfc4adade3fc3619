// flashctl operates on a flash image file through the same row-oriented
// access layer a target would use: info, read, write, and erase over a
// memory-mapped bank.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/moffa90/go-flashrow/device"
	"github.com/moffa90/go-flashrow/flash"
)

var cli struct {
	Image      string `help:"Flash image file." required:"" type:"path"`
	Base       uint32 `help:"Absolute base address of the bank." default:"0x10000000"`
	Size       uint32 `help:"Usable region size in bytes." default:"0x40000"`
	WriteBlock uint32 `help:"Write row size in bytes." default:"256"`
	EraseBlock uint32 `help:"Erase row size in bytes." default:"256"`
	Verify     bool   `help:"Read back and checksum each programmed row."`
	Verbose    bool   `help:"Enable debug logging." short:"v"`

	Info  infoCmd  `cmd:"" help:"Show region parameters and page layout."`
	Read  readCmd  `cmd:"" help:"Hexdump a byte range of the region."`
	Write writeCmd `cmd:"" help:"Program a binary file at a row-aligned offset."`
	Erase eraseCmd `cmd:"" help:"Erase a row-aligned range."`
}

type appContext struct {
	region *flash.Region
	bank   *device.Mmap
}

// zapLogger adapts a zap sugared logger to the flash.Logger interface.
type zapLogger struct {
	s *zap.SugaredLogger
}

func (l zapLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l zapLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l zapLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}

type infoCmd struct{}

func (c *infoCmd) Run(app *appContext) error {
	params := app.region.Parameters()

	heading := color.New(color.FgCyan, color.Bold)
	heading.Println("Region")
	fmt.Printf("  size:             %d bytes\n", app.region.Size())
	fmt.Printf("  write block size: %d bytes\n", params.WriteBlockSize)
	fmt.Printf("  erase value:      0x%02X\n", params.EraseValue)
	fmt.Printf("  explicit erase:   required=%v\n", !params.NoExplicitErase)

	heading.Println("Pages")
	for _, layout := range app.region.PageLayout() {
		fmt.Printf("  %d pages of %d bytes\n", layout.PagesCount, layout.PageSize)
	}

	return nil
}

type readCmd struct {
	Offset int64 `arg:"" help:"Region-relative byte offset."`
	Length int   `arg:"" help:"Number of bytes to read."`
}

func (c *readCmd) Run(app *appContext) error {
	buf := make([]byte, c.Length)
	if err := app.region.Read(c.Offset, buf); err != nil {
		return err
	}

	color.New(color.FgCyan, color.Bold).Printf("%d bytes at offset 0x%X\n", c.Length, c.Offset)
	fmt.Print(hex.Dump(buf))
	return nil
}

type writeCmd struct {
	Offset int64  `arg:"" help:"Region-relative byte offset, row-aligned."`
	File   string `arg:"" help:"Binary file to program." type:"existingfile"`
}

func (c *writeCmd) Run(app *appContext) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}

	if err := app.region.Write(c.Offset, data); err != nil {
		return err
	}
	if err := app.bank.Sync(); err != nil {
		return err
	}

	color.Green("programmed %d bytes at offset 0x%X", len(data), c.Offset)
	return nil
}

type eraseCmd struct {
	Offset int64 `arg:"" help:"Region-relative byte offset, row-aligned."`
	Size   int64 `arg:"" help:"Number of bytes to erase, row-aligned."`
}

func (c *eraseCmd) Run(app *appContext) error {
	if err := app.region.Erase(c.Offset, c.Size); err != nil {
		return err
	}
	if err := app.bank.Sync(); err != nil {
		return err
	}

	color.Green("erased %d bytes at offset 0x%X", c.Size, c.Offset)
	return nil
}

func main() {
	ktx := kong.Parse(&cli,
		kong.Name("flashctl"),
		kong.Description("Row-oriented access to a flash image file."),
		kong.UsageOnError(),
	)

	opts := []flash.Option{flash.WithVerifyAfterWrite(cli.Verify)}
	if cli.Verbose {
		logger, err := zap.NewDevelopment()
		ktx.FatalIfErrorf(err)
		defer func() { _ = logger.Sync() }()
		opts = append(opts, flash.WithLogger(zapLogger{s: logger.Sugar()}))
	}

	bank, err := device.NewMmap(cli.Image, cli.Base, cli.Size)
	ktx.FatalIfErrorf(err)
	defer func() { _ = bank.Close() }()

	region, err := flash.New(bank, flash.Config{
		BaseAddr:       cli.Base,
		Size:           cli.Size,
		WriteBlockSize: cli.WriteBlock,
		EraseBlockSize: cli.EraseBlock,
	}, opts...)
	ktx.FatalIfErrorf(err)

	err = ktx.Run(&appContext{region: region, bank: bank})
	ktx.FatalIfErrorf(err)
}
