package scheduler

import "go.trai.ch/tangle/internal/core/domain"

// GetModuleStatusMap returns a copy of the internal module status map.
// This is exported for testing purposes only.
func (s *Scheduler) GetModuleStatusMap() map[domain.Dep]domain.ModuleStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statusMap := make(map[domain.Dep]domain.ModuleStatus, len(s.moduleStatus))
	for k, v := range s.moduleStatus {
		statusMap[k] = v
	}
	return statusMap
}
