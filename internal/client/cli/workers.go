package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dmitrijs2005/gigline/internal/client/models"
)

// Workers browses available workers. An optional first argument filters by
// skill and an optional second one by city.
func (a *App) Workers(ctx context.Context, args []string) error {
	filter := models.WorkerFilter{}
	if len(args) > 0 {
		filter.Skill = args[0]
	}
	if len(args) > 1 {
		filter.City = args[1]
	}

	items, err := a.workerService.Browse(ctx, filter)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(items) == 0 {
		fmt.Println("No workers found.")
		return nil
	}
	for _, w := range items {
		availability := "busy"
		if w.Available {
			availability = "available"
		}
		fmt.Printf("%s  %s %s (%s)  %.2f/h  ★%.1f  %d jobs  [%s]\n",
			w.ID, w.FirstName, w.LastName, strings.Join(w.Skills, ","),
			w.HourlyRate, w.Rating, w.JobsDone, availability)
	}
	return nil
}

// Hire sends a direct-hire request for the given worker and job, prompting
// for an optional message.
func (a *App) Hire(ctx context.Context, workerID, jobID string) error {
	message, err := GetMultiline(a.reader, "Message to the worker (optional)", os.Stdout)
	if err != nil {
		return err
	}

	req, err := a.workerService.Hire(ctx, workerID, jobID, message)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Hire request %s sent (%s)\n", req.ID, req.Status)
	return nil
}

// Hires lists hire requests addressed to the caller.
func (a *App) Hires(ctx context.Context) error {
	items, err := a.workerService.Requests(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(items) == 0 {
		fmt.Println("No hire requests.")
		return nil
	}
	for _, req := range items {
		fmt.Printf("%s  job %s  [%s]", req.ID, req.JobID, req.Status)
		if req.Message != "" {
			fmt.Printf("  %q", req.Message)
		}
		fmt.Println()
	}
	return nil
}

// Respond accepts or declines a hire request.
func (a *App) Respond(ctx context.Context, requestID string, accept bool) error {
	req, err := a.workerService.Respond(ctx, requestID, accept)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Hire request %s is now %s\n", req.ID, req.Status)
	return nil
}
