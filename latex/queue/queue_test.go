// queue_test.go - unit tests for queue.go
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package queue

import (
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOrder(t *testing.T) {
	var names []string
	for i := 0; i < 20; i++ {
		names = append(names, strconv.Itoa(i))
	}

	var running, maxRunning int32
	fn := func(name string) (string, error) {
		n := atomic.AddInt32(&running, 1)
		for {
			m := atomic.LoadInt32(&maxRunning)
			if n <= m || atomic.CompareAndSwapInt32(&maxRunning, m, n) {
				break
			}
		}
		i, _ := strconv.Atoi(name)
		time.Sleep(time.Duration(20-i) * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return "out" + name, nil
	}

	res := Run(3, names, fn)
	require.Len(t, res, len(names))
	for i, r := range res {
		assert.Equal(t, names[i], r.Name)
		assert.Equal(t, "out"+names[i], r.Output)
		assert.NoError(t, r.Err)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&maxRunning), int32(3))
}

func TestErrors(t *testing.T) {
	errOdd := errors.New("odd")
	fn := func(name string) (string, error) {
		i, _ := strconv.Atoi(name)
		if i%2 == 1 {
			return "", errOdd
		}
		return name, nil
	}
	res := Run(0, []string{"0", "1", "2"}, fn)
	require.Len(t, res, 3)
	assert.NoError(t, res[0].Err)
	assert.ErrorIs(t, res[1].Err, errOdd)
	assert.Equal(t, "2", res[2].Output)
}

func TestSubmit(t *testing.T) {
	q := NewQueue(2, func(name string) (string, error) {
		return name + name, nil
	})
	c1 := q.Submit("a")
	c2 := q.Submit("b")
	q.Finish()

	r := <-c1
	assert.Equal(t, "aa", r.Output)
	r = <-c2
	assert.Equal(t, "bb", r.Output)

	_, ok := <-c2
	assert.False(t, ok)
}

func TestEmpty(t *testing.T) {
	res := Run(2, nil, func(string) (string, error) {
		t.Error("unexpected call")
		return "", nil
	})
	assert.Empty(t, res)
}
