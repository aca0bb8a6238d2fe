package config

// CronJob pairs a schedule with a job function.
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs maps job names to statically configured jobs. Extension packages
// register theirs through cron.Register from init() instead.
var CronJobs = map[string]CronJob{}
