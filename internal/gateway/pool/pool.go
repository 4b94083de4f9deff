// Пакет pool — таблица здоровья экземпляров Content Service и
// round-robin выбор среди здоровых.
//
// Таблица — единственное разделяемое изменяемое состояние Gateway:
// её обновляют и цикл health check, и обработчики запросов (при сбоях
// форвардинга), поэтому доступ защищён мьютексом. Допустима задержка
// сходимости до одного интервала health check.
//
// Список экземпляров фиксируется при старте процесса и не меняется
// в рантайме — меняются только состояния.
package pool

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// State — состояние экземпляра с точки зрения Gateway.
type State string

const (
	// StateHealthy — экземпляр считается способным обслуживать запросы.
	StateHealthy State = "healthy"
	// StateUnhealthy — экземпляр исключён из маршрутизации.
	StateUnhealthy State = "unhealthy"
)

// Prometheus-метрики таблицы здоровья.
var (
	instanceHealthy = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gw_instance_healthy",
		Help: "Состояние экземпляра Content Service (1 = healthy, 0 = unhealthy).",
	}, []string{"instance"})

	instanceTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gw_instance_transitions_total",
		Help: "Количество переходов состояния экземпляра (по направлению).",
	}, []string{"instance", "to"})
)

// InstanceStatus — снимок состояния одного экземпляра для диагностики.
type InstanceStatus struct {
	URL                 string    `json:"url"`
	State               State     `json:"state"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	LastChecked         time.Time `json:"last_checked"`
}

// instance — запись таблицы здоровья.
type instance struct {
	url                 string
	state               State
	consecutiveFailures int
	lastChecked         time.Time
}

// Pool — таблица здоровья с round-robin выбором.
type Pool struct {
	mu        sync.Mutex
	instances []*instance
	// next — round-robin указатель. Берётся по модулю ТЕКУЩЕГО размера
	// здорового множества при каждом вызове: выпавшие экземпляры
	// прозрачно пропускаются без нарушения относительного порядка остальных.
	next uint64
	// failThreshold — число подряд идущих сбоев до перехода в unhealthy.
	failThreshold int

	logger *slog.Logger
}

// New создаёт таблицу здоровья для статического списка экземпляров.
// Начальное состояние — healthy (оптимистично): первый же проход
// health check скорректирует картину.
func New(urls []string, failThreshold int, logger *slog.Logger) (*Pool, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("список экземпляров Content Service пуст")
	}
	if failThreshold < 1 {
		return nil, fmt.Errorf("failThreshold должен быть >= 1, получено %d", failThreshold)
	}

	instances := make([]*instance, 0, len(urls))
	for _, u := range urls {
		instances = append(instances, &instance{
			url:   u,
			state: StateHealthy,
		})
		instanceHealthy.WithLabelValues(u).Set(1)
	}

	return &Pool{
		instances:     instances,
		failThreshold: failThreshold,
		logger:        logger.With(slog.String("component", "instance_pool")),
	}, nil
}

// Next возвращает URL следующего здорового экземпляра (round-robin).
// Возвращает ("", false), если здоровых экземпляров нет.
func (p *Pool) Next() (string, bool) {
	return p.NextExcluding("")
}

// NextExcluding возвращает следующий здоровый экземпляр, отличный от
// exclude (для ретрая). Если другого здорового нет, но exclude ещё
// healthy — возвращает его же: повтор на том же экземпляре лучше отказа.
func (p *Pool) NextExcluding(exclude string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	healthy := make([]*instance, 0, len(p.instances))
	for _, inst := range p.instances {
		if inst.state == StateHealthy && inst.url != exclude {
			healthy = append(healthy, inst)
		}
	}

	if len(healthy) == 0 && exclude != "" {
		// Единственный здоровый — исключённый
		for _, inst := range p.instances {
			if inst.state == StateHealthy {
				healthy = append(healthy, inst)
			}
		}
	}
	if len(healthy) == 0 {
		return "", false
	}

	idx := p.next % uint64(len(healthy))
	p.next++
	return healthy[idx].url, true
}

// MarkFailure фиксирует сбой экземпляра (probe или форвардинг).
// По достижении failThreshold подряд экземпляр переходит в unhealthy.
func (p *Pool) MarkFailure(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	inst := p.find(url)
	if inst == nil {
		return
	}

	inst.consecutiveFailures++
	if inst.state == StateHealthy && inst.consecutiveFailures >= p.failThreshold {
		inst.state = StateUnhealthy
		instanceHealthy.WithLabelValues(url).Set(0)
		instanceTransitionsTotal.WithLabelValues(url, string(StateUnhealthy)).Inc()
		p.logger.Warn("Экземпляр исключён из маршрутизации",
			slog.String("instance", url),
			slog.Int("consecutive_failures", inst.consecutiveFailures),
		)
	}
}

// MarkSuccess фиксирует успех экземпляра: счётчик сбоев сбрасывается,
// unhealthy-экземпляр сразу возвращается в маршрутизацию
// (медленно вниз, быстро вверх — защита от флаппинга).
func (p *Pool) MarkSuccess(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	inst := p.find(url)
	if inst == nil {
		return
	}

	inst.consecutiveFailures = 0
	if inst.state == StateUnhealthy {
		inst.state = StateHealthy
		instanceHealthy.WithLabelValues(url).Set(1)
		instanceTransitionsTotal.WithLabelValues(url, string(StateHealthy)).Inc()
		p.logger.Info("Экземпляр возвращён в маршрутизацию",
			slog.String("instance", url),
		)
	}
}

// ObserveProbe фиксирует результат liveness probe: обновляет время
// последней проверки и делегирует в MarkFailure/MarkSuccess.
func (p *Pool) ObserveProbe(url string, ok bool) {
	p.mu.Lock()
	if inst := p.find(url); inst != nil {
		inst.lastChecked = time.Now().UTC()
	}
	p.mu.Unlock()

	if ok {
		p.MarkSuccess(url)
	} else {
		p.MarkFailure(url)
	}
}

// URLs возвращает все сконфигурированные экземпляры (для health check).
func (p *Pool) URLs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	urls := make([]string, 0, len(p.instances))
	for _, inst := range p.instances {
		urls = append(urls, inst.url)
	}
	return urls
}

// HealthyCount возвращает количество здоровых экземпляров.
func (p *Pool) HealthyCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, inst := range p.instances {
		if inst.state == StateHealthy {
			n++
		}
	}
	return n
}

// Snapshot возвращает снимок таблицы здоровья для диагностики.
func (p *Pool) Snapshot() []InstanceStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot := make([]InstanceStatus, 0, len(p.instances))
	for _, inst := range p.instances {
		snapshot = append(snapshot, InstanceStatus{
			URL:                 inst.url,
			State:               inst.state,
			ConsecutiveFailures: inst.consecutiveFailures,
			LastChecked:         inst.lastChecked,
		})
	}
	return snapshot
}

// find возвращает запись по URL. Вызывается под мьютексом.
func (p *Pool) find(url string) *instance {
	for _, inst := range p.instances {
		if inst.url == url {
			return inst
		}
	}
	return nil
}
