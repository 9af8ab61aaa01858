package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aguxez/babyfood/app"
	"github.com/aguxez/babyfood/config"
	"github.com/aguxez/babyfood/models"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml")
	follow := flag.Bool("follow", false, "keep running and print the report whenever entries change")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("error starting: %v", err)
	}
	defer a.Close()

	printReport(a.Store.Analysis(), a.Suggestions())

	if !*follow {
		return
	}

	unsubscribe := a.Store.Subscribe(func(_ []models.FoodEntry, report models.DietAnalysis) {
		printReport(report, a.Suggestions())
	})
	defer unsubscribe()

	a.Log.Info("watching for changes")
	<-ctx.Done()
}

func printReport(report models.DietAnalysis, suggestions []models.FoodLibraryItem) {
	fmt.Printf("%d entries logged, %.1f per day\n", report.TotalEntries, report.AverageDailyIntake)
	for _, c := range models.Categories {
		if n := report.CategoryBreakdown[c]; n > 0 {
			fmt.Printf("  %-10s %d\n", c, n)
		}
	}
	for _, r := range report.Recommendations {
		fmt.Println("- " + r)
	}
	for _, i := range report.Insights {
		fmt.Println("* " + i)
	}
	if len(suggestions) > 0 {
		fmt.Println("Try next:")
		for _, s := range suggestions {
			fmt.Printf("  %s (%s, %s)\n", s.Name, s.Category, s.RecommendedAge)
		}
	}
}
