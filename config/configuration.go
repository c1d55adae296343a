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

package config

import (
	"fmt"
	"strconv"
)

const (
	// Host is the configuration name of the database host.
	Host = "host"
	// Port is the configuration name of the database listener port.
	Port = "port"
	// SID is the configuration name of the Oracle SID or service name.
	SID = "sid"
	// User is the configuration name of the database user.
	User = "user"
	// Password is the configuration name of the database user's password.
	Password = "password"

	// defaultPort is the default value of the Port field.
	defaultPort = 1521
)

// A Configuration represents a general configuration needed to connect to Oracle database.
type Configuration struct {
	// Host is the address of the Oracle database server.
	Host string `json:"host" validate:"required"`
	// Port is the port of the Oracle database listener.
	Port int `json:"port" validate:"gte=1,lte=65535"`
	// SID is the Oracle system identifier (or service name) of the database.
	SID string `json:"sid" validate:"required,lte=128,oracle"`
	// User is the name of the database account the connector mines with.
	User string `json:"user" validate:"required"`
	// Password is the password of the database account.
	Password string `json:"password" validate:"required"`
}

// parses general configuration.
func parseConfiguration(cfg map[string]string) (Configuration, error) {
	config := Configuration{
		Host:     cfg[Host],
		Port:     defaultPort,
		SID:      cfg[SID],
		User:     cfg[User],
		Password: cfg[Password],
	}

	if cfg[Port] != "" {
		port, err := strconv.Atoi(cfg[Port])
		if err != nil {
			return Configuration{}, fmt.Errorf("parse %q: %w", Port, err)
		}

		config.Port = port
	}

	err := validate(config)
	if err != nil {
		return Configuration{}, err
	}

	return config, nil
}
