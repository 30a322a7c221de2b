// Command fetchio is a self-contained demo: it starts a local file
// server, then fetches its files through the reactor twice over — once
// with raw callback submissions, once with a suspendable task.
package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"fetchio"
)

var filesServedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "fetchio_demo_files_served_total",
		Help: "Total number of demo files served.",
	},
	[]string{"path"},
)

func init() {
	prometheus.MustRegister(filesServedTotal)
}

// fileServer serves two fixed text files plus /metrics on a loopback
// listener and returns its base URL.
func fileServer(log *logrus.Logger) (base string, stop func()) {
	files := map[string]string{
		"/file1.txt": "first file payload\n",
		"/file2.txt": "second file payload\n",
	}

	rt := chi.NewRouter()
	rt.Use(middleware.Recoverer)
	rt.Handle("/metrics", promhttp.Handler())
	for path, body := range files {
		rt.Get(path, func(w http.ResponseWriter, req *http.Request) {
			filesServedTotal.WithLabelValues(req.URL.Path).Inc()
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(body))
		})
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatalf("listen: %v", err)
	}

	srv := &http.Server{Handler: rt}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	return "http://" + ln.Addr().String(), func() { _ = srv.Close() }
}

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	base, stop := fileServer(log)
	defer stop()
	log.WithField("addr", base).Info("demo file server up")

	reactor := fetchio.New(fetchio.NewHTTPTransport(nil))
	defer reactor.Close()

	// Callback style: two fire-and-forget submissions sharing a counter,
	// drained by busy-polling.
	done := 0
	for _, path := range []string{"/file1.txt", "/file2.txt"} {
		target := base + path
		reactor.Submit(target, func(status fetchio.Status, body []byte) {
			done++
			log.WithFields(logrus.Fields{
				"target": target,
				"status": status.String(),
				"bytes":  len(body),
			}).Info("callback response")
		})
	}
	for done < 2 {
		reactor.Poll()
	}

	// Coroutine style: one task awaiting both files in sequence. The
	// task suspends at each Await and the reactor resumes it.
	task := fetchio.NewTask(context.Background(), func(_ context.Context, t *fetchio.Task) {
		first := t.Await(reactor, base+"/file1.txt")
		second := t.Await(reactor, base+"/file2.txt")
		log.WithFields(logrus.Fields{
			"first":  strings.TrimSpace(string(first)),
			"second": strings.TrimSpace(string(second)),
		}).Info("task responses")
	})
	fetchio.Drive(reactor, task)
}
