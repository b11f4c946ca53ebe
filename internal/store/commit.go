// Package store 实现领域状态仓库：乐观变更、序列化持久化与快照对账
package store

import (
	"context"

	"github.com/fitkeys/workout-sync-service/pkg/code"
	"github.com/fitkeys/workout-sync-service/pkg/errors"
)

// Commit 单次变更的持久化句柄
// 变更返回时内存状态已生效；Done 通道随后给出持久化结果，
// 持久化失败不回滚内存状态
type Commit struct {
	done <-chan error
}

// Done 返回持久化结果通道，结果只投递一次
func (c *Commit) Done() <-chan error {
	return c.done
}

// Wait 等待持久化结果
func (c *Commit) Wait(ctx context.Context) error {
	select {
	case err := <-c.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// newCommit 包装写队列结果，持久化失败统一归入 ErrorPersistenceFailed
func newCommit(raw <-chan error) *Commit {
	out := make(chan error, 1)
	go func() {
		err := <-raw
		if err != nil {
			err = errors.NewAppError(code.ErrorPersistenceFailed, err)
		}
		out <- err
	}()
	return &Commit{done: out}
}

// resolvedCommit 立即完成的句柄，用于静默空操作
func resolvedCommit(err error) *Commit {
	out := make(chan error, 1)
	out <- err
	return &Commit{done: out}
}

// mergeCommits 合并跨集合的两笔写入，两者都完成后才完成，优先返回先出现的错误
func mergeCommits(a, b *Commit) *Commit {
	out := make(chan error, 1)
	go func() {
		errA := <-a.done
		errB := <-b.done
		if errA != nil {
			out <- errA
			return
		}
		out <- errB
	}()
	return &Commit{done: out}
}
