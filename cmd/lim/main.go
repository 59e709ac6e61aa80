package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	lim "github.com/LiamWJH/LIM"
)

const (
	appName     = "lim"
	historyFile = ".lim_history"
	promptMain  = ">> "
	promptCont  = ".. "
)

var banner = fmt.Sprintf("LIM %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", lim.Version)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(lim.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`LIM %s (built %s)

Usage:
  %s run [file.lim]    Run a script (default: the main script from lim.yml).
  %s repl              Start the REPL.
  %s version           Print the compiled version.

`, lim.Version, lim.BuildDate, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	var file string
	switch len(args) {
	case 0:
		mpath := FindManifest(".")
		if mpath == "" {
			fmt.Fprintf(os.Stderr, "usage: %s run <file.lim>  (no %s found)\n", appName, manifestFileName)
			return 2
		}
		m, err := LoadManifest(mpath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			return 1
		}
		file = m.MainScript()
	case 1:
		file = args[0]
	default:
		fmt.Fprintf(os.Stderr, "usage: %s run [file.lim]\n", appName)
		return 2
	}

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}
	name := filepath.Base(file)

	prog, perrs, lexErr := lim.Parse(string(src))
	if lexErr != nil {
		fmt.Fprintln(os.Stderr, lim.WrapErrorWithName(lexErr, name, string(src)).Error())
		return 1
	}
	if len(perrs) > 0 {
		// Every accumulated parse error is reported; a faulty program is
		// never interpreted.
		fmt.Fprintln(os.Stderr, lim.FormatParseErrors(perrs, &lim.SourceRef{Name: name, Src: string(src)}))
		return 1
	}

	ip := lim.NewInterpreter()
	env := lim.NewEnv(ip.Global)
	if _, err := ip.RunProgram(prog, env, &lim.SourceRef{Name: name, Src: string(src)}); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := lim.NewInterpreter()

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		v, err := ip.EvalPersistentSource(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		fmt.Println(lim.FormatValueREPL(v))
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readByParseProbe reads lines until the buffered input parses to something
// other than an incomplete prefix, so multi-line constructs (open blocks,
// unclosed calls) keep prompting for continuation.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		_, perrs, lexErr := lim.ParseInteractive(src)
		if lexErr != nil {
			return src, true
		}
		if lim.IsIncomplete(perrs) {
			continue
		}
		return src, true
	}
}
