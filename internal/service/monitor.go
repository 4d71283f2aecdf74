package service

import (
	"sync"
	"time"
)

// Monitor 运行期计数器，后台 metrics 接口直接输出
type Monitor struct {
	mu sync.RWMutex

	// 下单
	OrderRequests  int64
	OrderSuccess   int64
	OrderFailures  int64
	StockConflicts int64 // 条件扣减输给并发订单的次数

	// 基础设施错误
	DBErrors int64
	MQErrors int64

	// worker
	WorkerProcessed int64
	WorkerFailed    int64

	LastOrderTime  time.Time
	LastDBError    time.Time
	LastMQError    time.Time
	LastWorkerTime time.Time
}

var globalMonitor = &Monitor{}

// GetMonitor 获取全局监控实例
func GetMonitor() *Monitor {
	return globalMonitor
}

// RecordOrderRequest 记录下单请求
func (m *Monitor) RecordOrderRequest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OrderRequests++
	m.LastOrderTime = time.Now()
}

// RecordOrderSuccess 记录下单成功
func (m *Monitor) RecordOrderSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OrderSuccess++
}

// RecordOrderFailed 记录下单失败
func (m *Monitor) RecordOrderFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OrderFailures++
}

// RecordStockConflict 记录库存并发冲突
func (m *Monitor) RecordStockConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StockConflicts++
}

// RecordDBError 记录数据库错误
func (m *Monitor) RecordDBError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DBErrors++
	m.LastDBError = time.Now()
}

// RecordMQError 记录MQ错误
func (m *Monitor) RecordMQError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MQErrors++
	m.LastMQError = time.Now()
}

// RecordWorkerProcessed 记录worker处理成功
func (m *Monitor) RecordWorkerProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WorkerProcessed++
	m.LastWorkerTime = time.Now()
}

// RecordWorkerFailed 记录worker处理失败
func (m *Monitor) RecordWorkerFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WorkerFailed++
}

// GetStats 获取统计信息
func (m *Monitor) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	successRate := float64(0)
	if m.OrderRequests > 0 {
		successRate = float64(m.OrderSuccess) / float64(m.OrderRequests) * 100
	}

	return map[string]interface{}{
		"order_requests":    m.OrderRequests,
		"order_success":     m.OrderSuccess,
		"order_failures":    m.OrderFailures,
		"order_success_pct": successRate,
		"stock_conflicts":   m.StockConflicts,
		"db_errors":         m.DBErrors,
		"mq_errors":         m.MQErrors,
		"worker_processed":  m.WorkerProcessed,
		"worker_failed":     m.WorkerFailed,
		"last_order_time":   m.LastOrderTime,
		"last_db_error":     m.LastDBError,
		"last_mq_error":     m.LastMQError,
		"last_worker_time":  m.LastWorkerTime,
	}
}
