package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount int
	Frames      uint64
	Systems     []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemEntry struct {
	system  System
	enabled bool
	stats   SystemStats
}

// Scheduler manages and executes systems in registration order.
type Scheduler struct {
	storage  *Storage
	systems  []*systemEntry
	commands *Commands
	tick     uint64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(),
	}
}

// Register adds a system to the scheduler and binds its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	bindFields(system, s.storage)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systems = append(s.systems, &systemEntry{
		system:  system,
		enabled: true,
		stats: SystemStats{
			Name:        systemType.Name(),
			MinDuration: time.Duration(1<<63 - 1),
		},
	})
}

// bindFields calls Init on every exported field of the system struct that
// implements storageBinder.
func bindFields(system System, storage *Storage) {
	value := reflect.ValueOf(system)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || !field.CanAddr() {
			continue
		}
		if binder, ok := field.Addr().Interface().(storageBinder); ok {
			binder.Init(storage)
		}
	}
}

// SetEnabled turns a registered system on or off by name. It reports whether
// a system with that name exists.
func (s *Scheduler) SetEnabled(name string, enabled bool) bool {
	found := false
	for _, entry := range s.systems {
		if entry.stats.Name == name {
			entry.enabled = enabled
			found = true
		}
	}
	return found
}

// Once executes all enabled systems once with the given delta time, then
// flushes the queued commands.
func (s *Scheduler) Once(dt float64) {
	s.tick++
	frame := &UpdateFrame{
		DeltaTime: dt,
		Tick:      s.tick,
		Commands:  s.commands,
		Storage:   s.storage,
	}

	for _, entry := range s.systems {
		if !entry.enabled {
			continue
		}

		start := time.Now()
		entry.system.Execute(frame)
		duration := time.Since(start)

		stats := &entry.stats
		stats.ExecutionCount++
		stats.LastDuration = duration
		stats.TotalDuration += duration
		stats.MinDuration = min(stats.MinDuration, duration)
		stats.MaxDuration = max(stats.MaxDuration, duration)
	}

	s.commands.Flush(s.storage)
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.tick,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, entry := range s.systems {
		st := entry.stats
		if st.ExecutionCount > 0 {
			st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
		} else {
			st.MinDuration = 0
		}
		stats.Systems[i] = st
	}

	return stats
}
