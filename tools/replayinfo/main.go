package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"wisp-server/internal/domain"
	"wisp-server/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "info":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replayinfo info <file.wqrp>")
			return
		}
		rs := load(os.Args[2])
		fmt.Printf("seed:     %d\n", rs.Seed)
		fmt.Printf("recorded: %s\n", time.Unix(rs.Timestamp, 0).Format(time.RFC3339))
		fmt.Printf("map:      %dx%d\n", rs.Width, rs.Height)
		fmt.Printf("actions:  %d\n", len(rs.Actions))
		for action, n := range countActions(rs) {
			fmt.Printf("  %-10s %d\n", action, n)
		}
	case "actions":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replayinfo actions <file.wqrp>")
			return
		}
		for i, a := range load(os.Args[2]).Actions {
			fmt.Printf("%4d  tick=%-5d %-10s %s\n", i, a.Tick, a.Action, a.Payload)
		}
	case "time":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replayinfo time <unix_timestamp>")
			return
		}
		ts, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Invalid timestamp: %v\n", err)
			return
		}
		fmt.Println(time.Unix(ts, 0).Format(time.RFC3339))
	default:
		printHelp()
	}
}

func load(path string) *domain.ReplaySession {
	rs, err := storage.LoadFile(path)
	if err != nil {
		fmt.Printf("Invalid replay: %v\n", err)
		os.Exit(1)
	}
	return rs
}

func countActions(rs *domain.ReplaySession) map[domain.ActionType]int {
	out := make(map[domain.ActionType]int)
	for _, a := range rs.Actions {
		out[a.Action]++
	}
	return out
}

func printHelp() {
	fmt.Println(`Replay Utility - просмотр файлов повторов .wqrp
Commands:
  info <file>        - заголовок и сводка по действиям
  actions <file>     - все записанные действия по порядку
  time <timestamp>   - преобразовать Unix время записи в читаемый формат`)
}
