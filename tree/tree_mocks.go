// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package tree is a generated GoMock package.
package tree

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockVisitor is a mock of Visitor interface.
type MockVisitor[K comparable, M any] struct {
	ctrl     *gomock.Controller
	recorder *MockVisitorMockRecorder[K, M]
	isgomock struct{}
}

// MockVisitorMockRecorder is the mock recorder for MockVisitor.
type MockVisitorMockRecorder[K comparable, M any] struct {
	mock *MockVisitor[K, M]
}

// NewMockVisitor creates a new mock instance.
func NewMockVisitor[K comparable, M any](ctrl *gomock.Controller) *MockVisitor[K, M] {
	mock := &MockVisitor[K, M]{ctrl: ctrl}
	mock.recorder = &MockVisitorMockRecorder[K, M]{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockVisitor[K, M]) EXPECT() *MockVisitorMockRecorder[K, M] {
	return m.recorder
}

// Visit mocks base method.
func (m *MockVisitor[K, M]) Visit(node *Node[K, M]) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Visit", node)
}

// Visit indicates an expected call of Visit.
func (mr *MockVisitorMockRecorder[K, M]) Visit(node any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Visit", reflect.TypeOf((*MockVisitor[K, M])(nil).Visit), node)
}

// MockEvictionListener is a mock of EvictionListener interface.
type MockEvictionListener[K comparable, M any] struct {
	ctrl     *gomock.Controller
	recorder *MockEvictionListenerMockRecorder[K, M]
	isgomock struct{}
}

// MockEvictionListenerMockRecorder is the mock recorder for MockEvictionListener.
type MockEvictionListenerMockRecorder[K comparable, M any] struct {
	mock *MockEvictionListener[K, M]
}

// NewMockEvictionListener creates a new mock instance.
func NewMockEvictionListener[K comparable, M any](ctrl *gomock.Controller) *MockEvictionListener[K, M] {
	mock := &MockEvictionListener[K, M]{ctrl: ctrl}
	mock.recorder = &MockEvictionListenerMockRecorder[K, M]{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEvictionListener[K, M]) EXPECT() *MockEvictionListenerMockRecorder[K, M] {
	return m.recorder
}

// RecordsEvicted mocks base method.
func (m *MockEvictionListener[K, M]) RecordsEvicted(nodes []*Node[K, M]) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "RecordsEvicted", nodes)
}

// RecordsEvicted indicates an expected call of RecordsEvicted.
func (mr *MockEvictionListenerMockRecorder[K, M]) RecordsEvicted(nodes any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecordsEvicted", reflect.TypeOf((*MockEvictionListener[K, M])(nil).RecordsEvicted), nodes)
}
