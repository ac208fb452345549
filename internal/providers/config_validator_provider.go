package providers

import (
	"fmt"

	"csd/internal/structures"

	"github.com/gookit/validate"
	"github.com/robfig/cron/v3"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	// gookit has no cron rule, parse with the same parser the scheduler uses
	if _, err := cron.ParseStandard(cv.conf.Schedule.RefreshCron); err != nil {
		return fmt.Errorf("schedule.refreshCron: %w", err)
	}
	if _, err := cron.ParseStandard(cv.conf.Comments.ClearCron); err != nil {
		return fmt.Errorf("comments.clearCron: %w", err)
	}
	if cv.conf.Stream.TTL < 0 || cv.conf.Stream.Timeout < 0 || cv.conf.Http.Timeout < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}
