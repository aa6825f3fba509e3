package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/deco8"
	"github.com/bodgit/deco8/cartridge"
	"github.com/bodgit/deco8/cover"
	"github.com/urfave/cli/v2"
)

const defaultDB = "deco8.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func loadCover(file string) (image.Image, error) {
	if file == "" {
		return cover.Compose(nil), nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	return cover.Compose(m), nil
}

func main() {
	app := cli.NewApp()

	app.Name = "deco8"
	app.Usage = "Fantasy console cartridge utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"DECO8_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "lua",
			Usage:       "Print the source code of a cartridge",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cart, _, err := deco8.DecodeFile(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Print(cart.Lua())

				return nil
			},
		},
		{
			Name:        "info",
			Usage:       "Show details of a cartridge",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cart, hash, err := deco8.DecodeFile(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Printf("Hash:        %s\n", hash)
				fmt.Printf("Compression: %s\n", cart.Version())
				fmt.Printf("Code region: %d bytes\n", cart.Len())
				fmt.Printf("Code:        %d bytes\n", len(cart.Lua().String()))

				return nil
			},
		},
		{
			Name:        "encode",
			Usage:       "Encode source code as a cartridge image",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "compression, c",
					Value: cartridge.V1.String(),
					Usage: "code compression, v0 or v1",
				},
				&cli.StringFlag{
					Name:  "cover",
					Usage: "image to use as the label",
				},
				&cli.StringFlag{
					Name:     "output, o",
					Usage:    "cartridge image to write",
					Required: true,
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				compression, err := cartridge.ParseCompression(c.String("compression"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				lua, err := ioutil.ReadFile(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				art, err := loadCover(c.String("cover"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				b, err := cartridge.New(string(lua)).ToPNG(compression, art)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := ioutil.WriteFile(c.String("output"), b, 0644); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and catalog cartridges",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "pattern",
					Value: deco8.DefaultPattern,
					Usage: "match cartridge images with this pattern",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				d, err := deco8.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer d.Close()

				if err := d.Scan(c.Args().First(), c.String("pattern")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "list",
			Usage:       "List catalogued cartridges",
			Description: "",
			Action: func(c *cli.Context) error {
				d, err := deco8.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer d.Close()

				entries, err := d.Catalog().List()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, e := range entries {
					fmt.Printf("%s %s %6d %s\n", e.Hash, e.Version, len(e.Lua), e.Path)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
