// SPDX-License-Identifier: GPL-3.0-only

package models

// AllModels lists every table managed by migrations.
var AllModels []any
