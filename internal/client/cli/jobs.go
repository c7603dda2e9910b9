package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/dmitrijs2005/gigline/internal/client/models"
)

// Jobs lists open jobs. An optional first argument filters by category and
// an optional second one by city.
func (a *App) Jobs(ctx context.Context, args []string) error {
	filter := models.JobFilter{}
	if len(args) > 0 {
		filter.Category = args[0]
	}
	if len(args) > 1 {
		filter.City = args[1]
	}

	items, err := a.jobService.List(ctx, filter)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(items) == 0 {
		fmt.Println("No jobs found.")
		return nil
	}
	for _, job := range items {
		fmt.Printf("%s  %-30s %s/%s  %.2f/%s  [%s]\n",
			job.ID, job.Title, job.Category, job.City, job.Rate, job.RateUnit, job.Status)
	}
	return nil
}

// Job prints the full details of a single job.
func (a *App) Job(ctx context.Context, id string) error {
	job, err := a.jobService.Get(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("%s (%s)\n", job.Title, job.ID)
	fmt.Printf("Category: %s  City: %s  Rate: %.2f/%s  Status: %s\n",
		job.Category, job.City, job.Rate, job.RateUnit, job.Status)
	if job.StartsAt != "" {
		fmt.Printf("Starts at: %s\n", job.StartsAt)
	}
	fmt.Println(job.Description)
	return nil
}

// Post interactively collects a job draft and submits it.
func (a *App) Post(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Job title", os.Stdout)
	if err != nil {
		return err
	}

	description, err := GetMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}

	category, err := getSimpleText(a.reader, "Category (e.g. cleaning, delivery, repair)", os.Stdout)
	if err != nil {
		return err
	}

	city, err := getSimpleText(a.reader, "City", os.Stdout)
	if err != nil {
		return err
	}

	rateText, err := getSimpleText(a.reader, "Rate (number)", os.Stdout)
	if err != nil {
		return err
	}
	rate, err := strconv.ParseFloat(rateText, 64)
	if err != nil {
		fmt.Println("Rate must be a number.")
		return err
	}

	rateUnit, err := getSimpleText(a.reader, "Rate unit: (h)our or (f)ixed", os.Stdout)
	if err != nil {
		return err
	}
	unit := "fixed"
	if rateUnit == "h" || rateUnit == "hour" {
		unit = "hour"
	}

	draft := models.JobDraft{
		Title:       title,
		Description: description,
		Category:    category,
		City:        city,
		Rate:        rate,
		RateUnit:    unit,
	}

	job, err := a.jobService.Create(ctx, draft)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Posted job %s\n", job.ID)
	return nil
}

// Apply submits an application to the given job, prompting for an optional
// message to the client.
func (a *App) Apply(ctx context.Context, jobID string) error {
	message, err := GetMultiline(a.reader, "Message to the client (optional)", os.Stdout)
	if err != nil {
		return err
	}

	application, err := a.jobService.Apply(ctx, jobID, message)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Application %s submitted (%s)\n", application.ID, application.Status)
	return nil
}

// Mine lists the caller's own jobs: posted ones for clients, applied-to
// ones for workers. The backend decides based on the account role.
func (a *App) Mine(ctx context.Context) error {
	items, err := a.jobService.Mine(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(items) == 0 {
		fmt.Println("Nothing yet.")
		return nil
	}
	for _, job := range items {
		fmt.Printf("%s  %-30s [%s]\n", job.ID, job.Title, job.Status)
	}
	return nil
}
