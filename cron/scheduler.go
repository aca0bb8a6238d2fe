package cron

import (
	"log"

	"github.com/robfig/cron/v3"

	"meezy.GO/config"
)

// StartCron schedules the built-in jobs from config plus everything the job
// packages registered during init, then starts the scheduler.
func StartCron() *cron.Cron {
	c := cron.New()
	for name, cronJob := range config.CronJobs {
		jobFunc := cronJob.Job
		if _, err := c.AddFunc(cronJob.Schedule, func() { jobFunc() }); err != nil {
			log.Fatalf("cron: failed to register job %s: %v", name, err)
		}
	}
	for name, j := range Jobs() {
		run := j.Run
		if _, err := c.AddFunc(j.Schedule, func() { run() }); err != nil {
			log.Fatalf("cron: failed to register job %s: %v", name, err)
		}
	}
	c.Start()
	return c
}
