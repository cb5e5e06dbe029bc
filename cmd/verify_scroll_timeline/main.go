// verify_scroll_timeline 无窗口回放滚动脚本，输出逐帧变换值
//
// 用法:
//
//	go run ./cmd/verify_scroll_timeline --scripts "data/scripts/*.yaml" --out build/trace --chart
//
// 每个脚本在独立的 FrameLoop 上回放，多个脚本并行执行。
// 任一脚本的期望不满足时以非零状态退出。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/decker502/scrollstage/pkg/config"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "data/site.yaml", "站点配置文件")
	scriptGlob = flag.String("scripts", "data/scripts/*.yaml", "脚本文件匹配模式")
	outDir     = flag.String("out", "build/trace", "输出目录")
	withChart  = flag.Bool("chart", false, "同时输出 WebP 进度曲线图")
	workers    = flag.Int("workers", runtime.NumCPU(), "并行回放数")
)

// Result 单个脚本的回放结果
type Result struct {
	Script   string
	Frames   int
	Failures []string
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	results, err := run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify_scroll_timeline: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, r := range results {
		status := "OK"
		if len(r.Failures) > 0 {
			status = "FAIL"
			failed++
		}
		fmt.Printf("%-4s %s (%d frames)\n", status, r.Script, r.Frames)
		for _, f := range r.Failures {
			fmt.Printf("     - %s\n", f)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func run(ctx context.Context) ([]Result, error) {
	site, err := config.LoadSiteConfig(*configPath)
	if err != nil {
		return nil, err
	}

	paths, err := filepath.Glob(*scriptGlob)
	if err != nil {
		return nil, fmt.Errorf("failed to match scripts: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scripts match %q", *scriptGlob)
	}
	sort.Strings(paths)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var (
		mu      sync.Mutex
		results []Result
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, *workers))

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := replayFile(site, path)
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Script < results[j].Script })
	return results, nil
}

// replayFile 回放单个脚本并写出 trace（以及可选的图表）
func replayFile(site *config.SiteConfig, path string) (Result, error) {
	script, err := LoadScript(path)
	if err != nil {
		return Result{}, err
	}
	log.Printf("[Replay] %s: %d steps", script.Name, len(script.Steps))

	trace, err := Replay(site, script)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", script.Name, err)
	}

	data, err := yaml.Marshal(trace)
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal trace: %w", err)
	}
	tracePath := filepath.Join(*outDir, script.Name+".trace.yaml")
	if err := os.WriteFile(tracePath, data, 0644); err != nil {
		return Result{}, fmt.Errorf("failed to write trace: %w", err)
	}

	if *withChart {
		chartPath := filepath.Join(*outDir, script.Name+".webp")
		if err := WriteChart(chartPath, RenderChart(trace)); err != nil {
			return Result{}, err
		}
	}

	return Result{Script: script.Name, Frames: len(trace.Frames), Failures: trace.Failures}, nil
}
