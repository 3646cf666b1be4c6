package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rinhabank/pkg/idgen"

	"github.com/go-redis/redis/v8"
)

var ErrLockFailed = errors.New("获取分布式锁失败")

// DistributedLock 基于 Redis SetNX 的锁
// value 记录持有者，释放时校验，避免删掉别人的锁
type DistributedLock struct {
	client     *redis.Client
	key        string
	value      string
	expiration time.Duration
}

func NewDistributedLock(client *redis.Client, key, value string, expiration time.Duration) *DistributedLock {
	return &DistributedLock{
		client:     client,
		key:        key,
		value:      value,
		expiration: expiration,
	}
}

// TryLock 尝试获取锁（非阻塞）
// 带过期时间，持有者崩溃后锁自动释放
func (l *DistributedLock) TryLock(ctx context.Context) (bool, error) {
	success, err := l.client.SetNX(ctx, l.key, l.value, l.expiration).Result()
	if err != nil {
		return false, err
	}
	return success, nil
}

// Lock 阻塞式获取锁（带重试）
func (l *DistributedLock) Lock(ctx context.Context, retryInterval time.Duration, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		success, err := l.TryLock(ctx)
		if err != nil {
			return err
		}
		if success {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return ErrLockFailed
}

// Unlock 释放锁
// Lua 脚本保证「校验持有者 + 删除」的原子性
func (l *DistributedLock) Unlock(ctx context.Context) error {
	script := `
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		else
			return 0
		end
	`
	_, err := l.client.Eval(ctx, script, []string{l.key}, l.value).Result()
	return err
}

// NewAccountLock 按账户维度的交易提交锁
// 不同账户互不影响，同一账户的并发提交先在这里排队，
// 降低多实例部署下数据库行锁上的争抢
func NewAccountLock(client *redis.Client, accountID int64) *DistributedLock {
	key := fmt.Sprintf("ledger:lock:account:%d", accountID)
	return NewDistributedLock(client, key, idgen.GenerateEventNo(), 30*time.Second)
}
