// Package web serves the HTTP API: a small HTML page for manual use and a
// JSON endpoint that builds a wallet report on demand.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vadiminshakov/walletpnl/internal/domain"
	"go.uber.org/zap"
)

// ReportRunner produces a wallet report for the current daily window.
type ReportRunner interface {
	Run(ctx context.Context, wallet common.Address) (*domain.WalletReport, error)
}

// RunnerFactory builds a runner bound to a per-request explorer API key.
// An empty key falls back to the server's configured key.
type RunnerFactory func(apiKey string) ReportRunner

// Server exposes the report endpoint and the HTML index.
type Server struct {
	addr      string
	newRunner RunnerFactory
	logger    *zap.Logger
}

// NewServer creates a web server on addr.
func NewServer(addr string, newRunner RunnerFactory, logger *zap.Logger) *Server {
	return &Server{addr: addr, newRunner: newRunner, logger: logger}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/report", s.handleReport)

	server := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("web server listening", zap.String("addr", s.addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type reportRequest struct {
	WalletAddress string `json:"wallet_address"`
	APIKey        string `json:"api_key"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !common.IsHexAddress(req.WalletAddress) {
		writeError(w, http.StatusBadRequest, "invalid wallet address")
		return
	}
	wallet := common.HexToAddress(req.WalletAddress)

	runner := s.newRunner(req.APIKey)
	report, err := runner.Run(r.Context(), wallet)
	if err != nil {
		s.logger.Error("report build failed",
			zap.String("wallet", wallet.Hex()), zap.Error(err))
		writeError(w, http.StatusBadGateway, "failed to build report")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		s.logger.Warn("failed to write report response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Wallet PnL</title>
  <link rel="preconnect" href="https://fonts.googleapis.com">
  <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
  <link href="https://fonts.googleapis.com/css2?family=Space+Mono:wght@400;700&display=swap" rel="stylesheet">
  <style>
    :root {
      --bg:#ffffff;
      --ink:#111111;
      --ink-mid:#4d4d4d;
      --panel:#f6f6f6;
    }
    * { box-sizing:border-box; }
    body {
      margin:0;
      min-height:100vh;
      display:flex;
      align-items:center;
      justify-content:center;
      padding:2rem;
      background:var(--bg);
      color:var(--ink);
      font-family:'Space Mono','JetBrains Mono',monospace;
    }
    #app {
      width:min(860px, 96vw);
      background:var(--panel);
      border:3px solid var(--ink);
      padding:2rem;
      box-shadow:12px 12px 0 rgba(0,0,0,.15);
    }
    h1 {
      font-size:1rem;
      text-transform:uppercase;
      letter-spacing:.2em;
      margin:0 0 1.5rem;
    }
    label {
      display:block;
      font-size:.7rem;
      text-transform:uppercase;
      letter-spacing:.12em;
      margin:1rem 0 .4rem;
      color:var(--ink-mid);
    }
    input {
      width:100%;
      padding:.6rem .8rem;
      border:2px solid var(--ink);
      background:#fff;
      font-family:inherit;
      font-size:.85rem;
    }
    button {
      margin-top:1.5rem;
      padding:.7rem 1.6rem;
      border:2px solid var(--ink);
      background:#fff;
      font-family:inherit;
      font-size:.75rem;
      text-transform:uppercase;
      letter-spacing:.12em;
      cursor:pointer;
      box-shadow:4px 4px 0 rgba(0,0,0,.15);
    }
    button:disabled { opacity:.5; cursor:wait; }
    pre {
      margin-top:1.5rem;
      padding:1rem;
      border:2px solid var(--ink);
      background:#fff;
      font-size:.7rem;
      overflow:auto;
      max-height:60vh;
      white-space:pre-wrap;
      word-break:break-all;
    }
    .error { border-color:#d7263d; color:#d7263d; }
  </style>
</head>
<body>
  <div id="app">
    <h1>Wallet PnL report</h1>
    <form id="reportForm">
      <label for="wallet">Wallet address</label>
      <input id="wallet" name="wallet" placeholder="0x..." autocomplete="off" />
      <label for="apikey">BscScan API key (optional)</label>
      <input id="apikey" name="apikey" placeholder="leave empty to use server key" autocomplete="off" />
      <button id="submit" type="submit">Build report</button>
    </form>
    <pre id="output" hidden></pre>
  </div>
<script>
const form = document.getElementById('reportForm');
const output = document.getElementById('output');
const submit = document.getElementById('submit');

form.addEventListener('submit', async (event) => {
  event.preventDefault();
  submit.disabled = true;
  output.hidden = false;
  output.classList.remove('error');
  output.textContent = 'Building report, this can take a while...';
  try {
    const resp = await fetch('/report', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify({
        wallet_address: document.getElementById('wallet').value.trim(),
        api_key: document.getElementById('apikey').value.trim()
      })
    });
    const body = await resp.json();
    if (!resp.ok) {
      output.classList.add('error');
      output.textContent = body.error || ('request failed: ' + resp.status);
      return;
    }
    output.textContent = JSON.stringify(body, null, 2);
  } catch (err) {
    output.classList.add('error');
    output.textContent = String(err);
  } finally {
    submit.disabled = false;
  }
});
</script>
</body>
</html>`
