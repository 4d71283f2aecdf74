package auth

import (
	"hash/crc32"
	"sort"
	"strconv"
	"sync"
)

// HashRing 一致性哈希环，用来把 token 缓存 key 稳定地归属到某个鉴权节点，
// 多实例部署时同一个 token 总是落在同一节点的 key 空间里。
type HashRing struct {
	replicas int
	keys     []int // 已排序的虚拟节点哈希
	nodes    map[int]string
	known    map[string]struct{}
	mu       sync.RWMutex
}

// NewHashRing 创建哈希环，nodes 为空时使用一个默认节点
func NewHashRing(nodes []string, replicas int) *HashRing {
	if replicas <= 0 {
		replicas = 50
	}
	if len(nodes) == 0 {
		nodes = []string{"auth-node-default"}
	}
	r := &HashRing{
		replicas: replicas,
		nodes:    make(map[int]string),
		known:    make(map[string]struct{}),
	}
	r.Add(nodes...)
	return r
}

// Add 批量添加节点
func (r *HashRing) Add(nodes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, node := range nodes {
		if _, exists := r.known[node]; exists {
			continue
		}
		r.known[node] = struct{}{}
		for i := 0; i < r.replicas; i++ {
			h := int(crc32.ChecksumIEEE([]byte(node + "#" + strconv.Itoa(i))))
			r.keys = append(r.keys, h)
			r.nodes[h] = node
		}
	}
	sort.Ints(r.keys)
}

// Node 返回 key 归属的节点
func (r *HashRing) Node(key string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.keys) == 0 {
		return ""
	}
	h := int(crc32.ChecksumIEEE([]byte(key)))
	idx := sort.Search(len(r.keys), func(i int) bool { return r.keys[i] >= h })
	if idx == len(r.keys) {
		idx = 0
	}
	return r.nodes[r.keys[idx]]
}
