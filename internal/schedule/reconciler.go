package schedule

import (
	"context"
	"fmt"
	"time"

	"csd/internal/models"
	"csd/internal/providers"
	"csd/internal/structures"

	json "github.com/goccy/go-json"
)

type ReconcilerInterface interface {
	Reconcile(ctx context.Context) error
}

// Reconciler merges the source schedule into the Store. A cycle either applies
// completely or leaves the persisted grid as it was.
type Reconciler struct {
	store          StoreInterface
	source         SourceInterface
	defaultSetting bool
	logger         providers.Logger
	metrics        providers.MetricsProviderInterface
}

func NewReconciler(conf *structures.Config, store StoreInterface, source SourceInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) ReconcilerInterface {
	return &Reconciler{
		store:          store,
		source:         source,
		defaultSetting: conf.Schedule.DefaultCommentSetting,
		logger:         logger,
		metrics:        metrics,
	}
}

func (r *Reconciler) Reconcile(ctx context.Context) error {
	start := time.Now()
	changes, err := r.reconcile(ctx)
	r.metrics.ObserveReconcileDuration(time.Since(start))

	if err != nil {
		r.metrics.IncReconciliations("error")
		r.logger.Errorf(providers.TypeSchedule, "Error updating schedule from %s: %s", r.source.Location(), err)
		return err
	}
	r.metrics.IncReconciliations("ok")
	r.logger.Infof(providers.TypeSchedule, "Updated schedule from %s, %d slot(s) changed", r.source.Location(), changes)
	return nil
}

func (r *Reconciler) reconcile(ctx context.Context) (int, error) {
	data, err := r.source.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	candidate, err := ParseSourceSchedule(data)
	if err != nil {
		return 0, err
	}

	changes := 0
	err = r.store.Update(func(local models.ScheduleGrid) error {
		if !local.Valid() {
			return fmt.Errorf("%w: local schedule has %d days", models.ErrMalformedSchedule, len(local))
		}
		changes = Merge(local, candidate, r.defaultSetting)
		return nil
	})
	return changes, err
}

// ParseSourceSchedule decodes a source schedule. Only the show name of each
// slot is taken from the source; comment flags are owned locally.
func ParseSourceSchedule(data []byte) (models.ScheduleGrid, error) {
	var candidate models.ScheduleGrid
	if err := json.Unmarshal(data, &candidate); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrMalformedSchedule, err)
	}
	if !candidate.Valid() {
		return nil, fmt.Errorf("%w: source has %d days, want %d", models.ErrMalformedSchedule, len(candidate), models.DaysPerWeek)
	}
	for day, hours := range candidate {
		for hour, slot := range hours {
			if slot.Show == "" {
				return nil, fmt.Errorf("%w: day %d hour %s has no show", models.ErrMalformedSchedule, day, hour)
			}
		}
	}
	return candidate, nil
}

// Merge rewrites local in place to match candidate hour by hour. A slot whose
// show changed inherits the last known setting for the incoming show name,
// falling back to defaultSetting for shows never seen before. Slots whose show
// is unchanged keep their flag. It returns the number of slots touched.
func Merge(local, candidate models.ScheduleGrid, defaultSetting bool) int {
	changes := 0
	for day := 0; day < models.DaysPerWeek; day++ {
		localDay := local[day]
		candidateDay := candidate[day]
		for hourNum := 0; hourNum < models.HoursPerDay; hourNum++ {
			hour := models.HourKey(hourNum)
			incoming, scheduled := candidateDay[hour]
			current, present := localDay[hour]

			switch {
			case scheduled && (!present || current.Show != incoming.Show):
				enabled, known := local.CommentSetting(incoming.Show)
				if !known {
					enabled = defaultSetting
				}
				localDay[hour] = models.Slot{Show: incoming.Show, CommentsEnabled: enabled}
				changes++
			case !scheduled && present:
				delete(localDay, hour)
				changes++
			}
		}
	}
	return changes
}
