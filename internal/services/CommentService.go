package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"csd/internal/comments"
	"csd/internal/models"
	"csd/internal/providers"
	"csd/internal/schedule"
	"csd/internal/stream"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

const cacheKeyPrefix = "comments:"

// Outcome is the result of a comment submission as shown to the visitor.
type Outcome int

const (
	OutcomeAdded Outcome = iota
	OutcomeDisabled
	OutcomeFull
	OutcomeInvalid
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdded:
		return "added"
	case OutcomeDisabled:
		return "disabled"
	case OutcomeFull:
		return "full"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "error"
	}
}

func (o Outcome) Message() string {
	switch o {
	case OutcomeAdded:
		return "comment successfully added"
	case OutcomeDisabled:
		return "comments currently disabled"
	case OutcomeFull:
		return "comment section full"
	case OutcomeInvalid:
		return "invalid comment"
	default:
		return "error"
	}
}

// Submission carries the posted form. Missing lists required fields that were
// absent from the request.
type Submission struct {
	Name    string
	Comment string
	Missing []string
}

type CommentServiceInterface interface {
	CommentsEnabled(ctx context.Context) (string, bool)
	CurrentComments(ctx context.Context) ([]byte, error)
	LiveComments(ctx context.Context) (string, models.CommentFile, error)
	Submit(ctx context.Context, sub Submission) Outcome
	ListShows() []models.ShowSetting
	GetCommentSetting(show string) (models.ShowSetting, error)
	SetCommentSetting(show string, enabled bool) error
	DeleteComments(ctx context.Context, show string, ids []int) (string, error)
	EvictComments() (int, error)
}

type CommentService struct {
	schedule schedule.StoreInterface
	resolver stream.ResolverInterface
	store    comments.StoreInterface
	cache    providers.CacheProviderInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	now      func() time.Time
	// generation counts comment writes so a read racing a write never
	// leaves a stale body in the cache
	generation atomic.Uint64
}

func NewCommentService(
	scheduleStore schedule.StoreInterface,
	resolver stream.ResolverInterface,
	store comments.StoreInterface,
	cache providers.CacheProviderInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) *CommentService {
	return &CommentService{
		schedule: scheduleStore,
		resolver: resolver,
		store:    store,
		cache:    cache,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

// SetClock replaces the wall clock used to find the current slot.
func (cs *CommentService) SetClock(now func() time.Time) {
	cs.now = now
}

// CommentsEnabled returns the live show and whether it accepts comments. A
// show is open when it is live and either the current weekday/hour slot or the
// show's own setting has comments enabled.
func (cs *CommentService) CommentsEnabled(ctx context.Context) (string, bool) {
	status := cs.resolver.Status(ctx)
	if !status.Running || status.ShowName == "" {
		return status.ShowName, false
	}

	now := cs.now()
	if slot, ok := cs.schedule.SlotAt(int(now.Weekday()), now.Hour()); ok && slot.CommentsEnabled {
		return status.ShowName, true
	}
	return status.ShowName, cs.schedule.GetCommentSetting(status.ShowName)
}

// CurrentComments returns the JSON body for the public comment feed: null
// while comments are closed, otherwise the live show's comment object.
func (cs *CommentService) CurrentComments(ctx context.Context) ([]byte, error) {
	show, enabled := cs.CommentsEnabled(ctx)
	if !enabled {
		return []byte("null"), nil
	}

	key := cacheKey(show)
	if body, ok := cs.cache.Get(key); ok {
		return body, nil
	}

	gen := cs.generation.Load()
	file, err := cs.store.Read(show)
	if err != nil {
		cs.logger.Errorf(providers.TypeGet, "Error returning comments for %s: %s", show, err)
		return nil, err
	}
	body, err := json.Marshal(file)
	if err != nil {
		return nil, err
	}
	cs.cache.Set(key, body)
	if cs.generation.Load() != gen {
		cs.cache.Del(key)
	}
	return body, nil
}

// LiveComments reads the live show's comments for the admin console. It fails
// with ErrCommentsDisabled while comments are closed.
func (cs *CommentService) LiveComments(ctx context.Context) (string, models.CommentFile, error) {
	show, enabled := cs.CommentsEnabled(ctx)
	if !enabled {
		return "", nil, models.ErrCommentsDisabled
	}
	file, err := cs.store.Read(show)
	if err != nil {
		return show, nil, err
	}
	return show, file, nil
}

func (cs *CommentService) Submit(ctx context.Context, sub Submission) Outcome {
	outcome := cs.submit(ctx, sub)
	cs.metrics.IncCommentSubmissions(outcome.String())
	return outcome
}

func (cs *CommentService) submit(ctx context.Context, sub Submission) Outcome {
	show, enabled := cs.CommentsEnabled(ctx)
	if !enabled {
		return OutcomeDisabled
	}
	if len(sub.Missing) > 0 {
		cs.logger.Infof(providers.TypePost, "Received invalid comment, missing: %s", strings.Join(sub.Missing, ","))
		return OutcomeInvalid
	}

	id, err := cs.store.Append(show, sub.Name, sub.Comment)
	switch {
	case err == nil:
		cs.invalidate(show)
		cs.logger.Debugf(providers.TypePost, "Added comment %d to %s", id, show)
		return OutcomeAdded
	case errors.Is(err, models.ErrCapacityExceeded):
		cs.logger.Infof(providers.TypePost, "Comment section full for %s", show)
		return OutcomeFull
	default:
		cs.logger.Errorf(providers.TypePost, "Error adding comment to %s: %s", show, err)
		return OutcomeError
	}
}

func (cs *CommentService) ListShows() []models.ShowSetting {
	shows := cs.schedule.ListShows()
	result := make([]models.ShowSetting, 0, len(shows))
	for _, show := range shows {
		result = append(result, models.ShowSetting{Show: show, Comments: cs.schedule.GetCommentSetting(show)})
	}
	return result
}

func (cs *CommentService) GetCommentSetting(show string) (models.ShowSetting, error) {
	if !cs.known(show) {
		return models.ShowSetting{}, fmt.Errorf("%w: %q", models.ErrUnknownShow, show)
	}
	return models.ShowSetting{Show: show, Comments: cs.schedule.GetCommentSetting(show)}, nil
}

// SetCommentSetting changes the flag for a show listed in the schedule.
func (cs *CommentService) SetCommentSetting(show string, enabled bool) error {
	if !cs.known(show) {
		return fmt.Errorf("%w: %q", models.ErrUnknownShow, show)
	}
	changed, err := cs.schedule.SetCommentSetting(show, enabled)
	if err != nil {
		cs.logger.Errorf(providers.TypeApp, "Error saving comment setting for %s: %s", show, err)
		return err
	}
	if changed {
		cs.logger.Infof(providers.TypeApp, "Comments %s for %s", enabledWord(enabled), show)
	}
	return nil
}

// DeleteComments removes ids from show, or from the live show when show is
// empty. It returns the show that was edited.
func (cs *CommentService) DeleteComments(ctx context.Context, show string, ids []int) (string, error) {
	if show == "" {
		live, enabled := cs.CommentsEnabled(ctx)
		if !enabled {
			return "", models.ErrCommentsDisabled
		}
		show = live
	}
	defer cs.invalidate(show)

	for _, id := range ids {
		if err := cs.store.Delete(show, id); err != nil {
			cs.logger.Errorf(providers.TypeApp, "Error deleting comment %d from %s: %s", id, show, err)
			return show, err
		}
		cs.logger.Infof(providers.TypeApp, "Deleted comment %d from %s", id, show)
	}
	return show, nil
}

// EvictComments wipes every comment file and the response cache.
func (cs *CommentService) EvictComments() (int, error) {
	removed, err := cs.store.ClearAll()
	cs.generation.Inc()
	cs.cache.Clear()
	cs.metrics.AddCommentFilesEvicted(removed)
	if err != nil {
		cs.logger.Errorf(providers.TypeApp, "Error clearing comments, %d files removed: %s", removed, err)
		return removed, err
	}
	cs.logger.Infof(providers.TypeApp, "Cleared %d comment files", removed)
	return removed, nil
}

// invalidate must run after the write it follows has landed on disk.
func (cs *CommentService) invalidate(show string) {
	cs.generation.Inc()
	cs.cache.Del(cacheKey(show))
}

// cacheKey uses the sanitized name so every alias of a comment file shares
// one entry.
func cacheKey(show string) string {
	name, err := comments.SanitizeFileName(show)
	if err != nil {
		return cacheKeyPrefix + show
	}
	return cacheKeyPrefix + name
}

func (cs *CommentService) known(show string) bool {
	return show != "" && slices.Contains(cs.schedule.ListShows(), show)
}

func enabledWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
