package routerrepo

import (
	"sync"

	"cosmossdk.io/math"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/stableswap/sqs/domain"
)

// RouterRepository represents the contract for a repository handling router information
type RouterRepository interface {
	// GetGraph returns the current token to ranked pools graph and its snapshot ID.
	// The returned graph is shared and must not be mutated.
	GetGraph() (domain.TokenPoolGraph, uint64)
	// SetGraph replaces the graph and the pool TVLs it was ranked by.
	// Returns the new snapshot ID, which increases monotonically.
	SetGraph(graph domain.TokenPoolGraph, tvls domain.PoolTVLMap) uint64
	// GetPoolTVL returns the TVL of a pool.
	// Returns true if the TVL for the given pool is found. False otherwise.
	GetPoolTVL(poolName string) (osmomath.Dec, bool)
	// GetAllPoolTVLs returns the pool TVLs of the current snapshot.
	GetAllPoolTVLs() domain.PoolTVLMap
}

var _ RouterRepository = &routerRepo{}

type routerRepo struct {
	poolTVLMap sync.Map

	graphMx    sync.RWMutex
	graph      domain.TokenPoolGraph
	snapshotID uint64
}

// New creates a new repository for the router.
func New() RouterRepository {
	return &routerRepo{
		poolTVLMap: sync.Map{},
		graph:      domain.TokenPoolGraph{},
	}
}

// GetGraph implements RouterRepository.
func (r *routerRepo) GetGraph() (domain.TokenPoolGraph, uint64) {
	r.graphMx.RLock()
	defer r.graphMx.RUnlock()
	return r.graph, r.snapshotID
}

// SetGraph implements RouterRepository.
func (r *routerRepo) SetGraph(graph domain.TokenPoolGraph, tvls domain.PoolTVLMap) uint64 {
	r.graphMx.Lock()
	defer r.graphMx.Unlock()

	r.poolTVLMap.Range(func(key, _ interface{}) bool {
		if _, ok := tvls[key.(string)]; !ok {
			r.poolTVLMap.Delete(key)
		}
		return true
	})
	for poolName, tvl := range tvls {
		r.poolTVLMap.Store(poolName, tvl)
	}

	r.graph = graph
	r.snapshotID++

	domain.SQSPoolGraphSnapshotIDGauge.Set(float64(r.snapshotID))

	return r.snapshotID
}

// GetPoolTVL implements RouterRepository.
func (r *routerRepo) GetPoolTVL(poolName string) (math.LegacyDec, bool) {
	tvlAny, ok := r.poolTVLMap.Load(poolName)
	if !ok {
		return osmomath.Dec{}, false
	}

	tvl, ok := tvlAny.(osmomath.Dec)
	if !ok {
		return osmomath.Dec{}, false
	}

	return tvl, true
}

// GetAllPoolTVLs implements RouterRepository.
func (r *routerRepo) GetAllPoolTVLs() domain.PoolTVLMap {
	tvls := domain.PoolTVLMap{}

	r.poolTVLMap.Range(func(key, value interface{}) bool {
		tvl, ok := value.(osmomath.Dec)
		if !ok {
			return false
		}

		poolName, ok := key.(string)
		if !ok {
			return false
		}

		tvls[poolName] = tvl

		return true
	})

	return tvls
}
