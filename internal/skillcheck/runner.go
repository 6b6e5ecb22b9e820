package skillcheck

import (
	"context"
	"sync"
	"time"

	"wisp-server/internal/domain"
)

// Result - итог работы Runner: исход и точка удара (для записи повтора)
type Result struct {
	Outcome Outcome
	Ticks   int
	Struck  bool
}

// Runner ведет Session по настоящим часам. Живет в своей горутине:
// тикер двигает маркер, Strike бьет, Updates отдает состояния.
// После выхода из running тикер сразу останавливается, через DisplayDelay
// приходит финальный Update с Outcome, и канал закрывается.
type Runner struct {
	session *Session
	cfg     Config
	period  time.Duration

	strikes chan struct{}
	updates chan Update
	done    chan struct{}

	mu       sync.Mutex
	result   Result
	finished bool
}

// Start запускает проверку. Отмена ctx бросает игру без финального отчета.
func Start(ctx context.Context, rarity domain.Rarity, cfg Config) *Runner {
	cfg = cfg.normalize()
	r := &Runner{
		session: NewSession(rarity, cfg),
		cfg:     cfg,
		period:  cfg.Period(rarity),
		strikes: make(chan struct{}, 1),
		updates: make(chan Update, 16),
		done:    make(chan struct{}),
	}
	go r.run(ctx)
	return r
}

// Strike не блокирует. Лишние и поздние удары отбрасываются.
func (r *Runner) Strike() {
	select {
	case r.strikes <- struct{}{}:
	default:
	}
}

func (r *Runner) Updates() <-chan Update {
	return r.updates
}

// Done закрывается вместе с Updates
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Result возвращает итог; ok == false, если игра еще идет или была отменена.
func (r *Runner) Result() (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result, r.finished
}

func (r *Runner) Period() time.Duration {
	return r.period
}

func (r *Runner) run(ctx context.Context) {
	defer close(r.done)
	defer close(r.updates)

	ticker := time.NewTicker(r.period)
	r.offer(r.session.Snapshot())

	for r.session.Phase() == PhaseRunning {
		select {
		case <-ctx.Done():
			ticker.Stop()
			return
		case <-r.strikes:
			r.session.Strike()
		case <-ticker.C:
			u := r.session.Advance()
			if u.Phase == PhaseRunning {
				r.offer(u)
			}
		}
	}
	ticker.Stop()

	// Конечное состояние показываем сразу, итог - после паузы
	final := r.session.Snapshot()
	if !r.send(ctx, final) {
		return
	}

	timer := time.NewTimer(r.cfg.DisplayDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	out, _ := r.session.Outcome()
	r.mu.Lock()
	r.result = Result{Outcome: out, Ticks: final.Ticks, Struck: final.Struck}
	r.finished = true
	r.mu.Unlock()

	final.Outcome = &out
	r.send(ctx, final)
}

// offer - промежуточное состояние; если читатель отстал, кадр пропускается
func (r *Runner) offer(u Update) {
	select {
	case r.updates <- u:
	default:
	}
}

// send - обязательное состояние; ждет читателя или отмены
func (r *Runner) send(ctx context.Context, u Update) bool {
	select {
	case r.updates <- u:
		return true
	case <-ctx.Done():
		return false
	}
}
