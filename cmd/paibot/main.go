// Command paibot starts an interactive console conversation with Paibot.
//
// Usage:
//
//	paibot <usuario> [--modelo gemini-pro] [--docs ./docs/commands]
//
// Configuration is read from the environment (GEMINI_API_KEY plus the
// GITHUB_REPO_* coordinates) and can be overlaid with --config.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Fl0zWer/Paibot"
	"github.com/Fl0zWer/Paibot/config"
	"github.com/Fl0zWer/Paibot/logging"
)

var exitWords = map[string]struct{}{
	"salir": {},
	"exit":  {},
	"quit":  {},
}

var (
	flagModelo   string
	flagProvider string
	flagDocs     string
	flagMemoria  string
	flagConfig   string
	flagVerbose  bool
	flagWatch    bool
)

var rootCmd = &cobra.Command{
	Use:   "paibot <usuario>",
	Short: "Paibot, la guía conversacional con la personalidad de Paimon",
	Long: `Paibot mantiene una conversación en español con memoria persistente
por usuario y responde consultas sobre comandos documentados.

Escribe 'salir', 'exit' o 'quit' para terminar la sesión.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runChat,
}

func init() {
	rootCmd.Flags().StringVar(&flagModelo, "modelo", "", "nombre del modelo generativo")
	rootCmd.Flags().StringVar(&flagProvider, "provider", "", "proveedor del modelo (gemini, openai, anthropic)")
	rootCmd.Flags().StringVar(&flagDocs, "docs", "", "directorio con la documentación de comandos")
	rootCmd.Flags().StringVar(&flagMemoria, "memoria", "", "directorio base para la memoria persistente")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "archivo YAML de configuración adicional")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "registro detallado")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "recargar la documentación cuando cambie en disco")
}

func runChat(cmd *cobra.Command, args []string) error {
	userID := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagConfig != "" {
		cfg, err = cfg.MergeFile(flagConfig)
		if err != nil {
			return err
		}
	}
	if flagModelo != "" {
		cfg.ModelName = flagModelo
	}
	if flagProvider != "" {
		cfg.Provider = flagProvider
	}
	if flagDocs != "" {
		cfg.DocsDir = flagDocs
	}
	if flagMemoria != "" {
		cfg.MemoryDir = flagMemoria
	}

	logger := logging.New(func(c *logging.Config) {
		if flagVerbose {
			c.Level = logging.LevelDebug
		}
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := paibot.New(cfg, func(o *paibot.Options) {
		o.Logger = logger
	})
	if err != nil {
		return err
	}

	if flagWatch {
		go func() {
			if err := p.Commands().Watch(ctx, logger); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("documentation watcher stopped", "error", err)
			}
		}()
	}

	fmt.Println("Iniciando conversación con Paibot. Escribe 'salir' para terminar.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Tú: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if _, done := exitWords[strings.ToLower(line)]; done {
			break
		}

		reply, err := p.Respond(ctx, userID, line)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			logger.Error("respond failed", "error", err)
			fmt.Println("Paibot: Paimon tuvo un problema inesperado, ¡inténtalo otra vez!")
			continue
		}
		fmt.Printf("Paibot: %s\n", reply)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Println("Cerrando sesión. ¡Hasta luego!")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
