package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"

	"github.com/andrewyi/uninews/src/server"
)

func main() {

	app := cli.NewApp()

	app.Name = "uninews"
	app.Version = "0.1.0"
	app.Usage = "University cooperation-news crawler"
	app.Description = "抓取高校主页中与校企合作相关的新闻，导出为xlsx或csv"
	app.Flags = server.Flags()

	s := server.NewServer()
	app.Action = s.Start

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
