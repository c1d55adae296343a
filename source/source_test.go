// Copyright © 2022 Meroxa, Inc. & Yalantis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package source

import (
	"context"
	"errors"
	"testing"
	"time"

	sdk "github.com/conduitio/conduit-connector-sdk"
	"github.com/golang/mock/gomock"
	"github.com/matryer/is"

	"github.com/conduitio-labs/conduit-connector-oracle-logminer/config"
	"github.com/conduitio-labs/conduit-connector-oracle-logminer/source/mock"
)

func testConfigMap() map[string]string {
	return map[string]string{
		config.Host:      "localhost",
		config.SID:       "ORCL",
		config.User:      "test_user",
		config.Password:  "test_pass_123",
		config.Whitelist: "HR.JOBS, HR",
	}
}

func TestSource_Configure_success(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	s := Source{}

	err := s.Configure(context.Background(), testConfigMap())
	is.NoErr(err)
	is.Equal(s.config, config.Source{
		Configuration: config.Configuration{
			Host:     "localhost",
			Port:     1521,
			SID:      "ORCL",
			User:     "test_user",
			Password: "test_pass_123",
		},
		Whitelist:          "HR.JOBS, HR",
		BatchSize:          1000,
		FetchSize:          1000,
		TombstonesOnDelete: true,
		DictionarySource:   config.DictionaryOnline,
		Timezone:           "UTC",
		ConnectionRetries:  3,
		RetryBackoff:       3 * time.Second,
	})
}

func TestSource_Configure_failure(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	s := Source{}

	cfgMap := testConfigMap()
	delete(cfgMap, config.Whitelist)

	err := s.Configure(context.Background(), cfgMap)
	is.True(err != nil)
}

func TestSource_Open_noIteratorFactory(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	s := Source{}

	err := s.Configure(context.Background(), testConfigMap())
	is.NoErr(err)

	err = s.Open(context.Background(), nil)
	is.True(errors.Is(err, errNoIteratorFactory))
}

func TestSource_Read_success(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	ctrl := gomock.NewController(t)
	ctx := context.Background()

	record := sdk.Record{
		Position:  sdk.Position("7296911"),
		Operation: sdk.OperationCreate,
	}

	it := mock.NewMockIterator(ctrl)
	it.EXPECT().HasNext(ctx).Return(true, nil)
	it.EXPECT().Next(ctx).Return(record, nil)

	s := Source{iterator: it}

	r, err := s.Read(ctx)
	is.NoErr(err)
	is.Equal(r, record)
}

func TestSource_Read_backoffRetry(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	ctrl := gomock.NewController(t)
	ctx := context.Background()

	it := mock.NewMockIterator(ctrl)
	it.EXPECT().HasNext(ctx).Return(false, nil)

	s := Source{iterator: it}

	_, err := s.Read(ctx)
	is.Equal(err, sdk.ErrBackoffRetry)
}

func TestSource_Read_failureHasNext(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	ctrl := gomock.NewController(t)
	ctx := context.Background()

	errHasNext := errors.New("has next: failed")

	it := mock.NewMockIterator(ctrl)
	it.EXPECT().HasNext(ctx).Return(false, errHasNext)

	s := Source{iterator: it}

	_, err := s.Read(ctx)
	is.True(errors.Is(err, errHasNext))
}

func TestSource_Read_failureNext(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	ctrl := gomock.NewController(t)
	ctx := context.Background()

	errNext := errors.New("next: failed")

	it := mock.NewMockIterator(ctrl)
	it.EXPECT().HasNext(ctx).Return(true, nil)
	it.EXPECT().Next(ctx).Return(sdk.Record{}, errNext)

	s := Source{iterator: it}

	_, err := s.Read(ctx)
	is.True(errors.Is(err, errNext))
}

func TestSource_Teardown_success(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	ctrl := gomock.NewController(t)

	it := mock.NewMockIterator(ctrl)
	it.EXPECT().Close().Return(nil)

	s := Source{iterator: it}

	err := s.Teardown(context.Background())
	is.NoErr(err)
}

func TestSource_Teardown_failure(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	ctrl := gomock.NewController(t)

	errClose := errors.New("close: failed")

	it := mock.NewMockIterator(ctrl)
	it.EXPECT().Close().Return(errClose)

	s := Source{iterator: it}

	err := s.Teardown(context.Background())
	is.True(errors.Is(err, errClose))
}

func TestSource_Teardown_noOpenResources(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	s := Source{}

	err := s.Teardown(context.Background())
	is.NoErr(err)
}
