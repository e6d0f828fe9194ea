/*
 * options.go, part of defcorr.
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * defcorr is developed at the Universidad de Santiago de Chile
 * (USACH), on top of goChem.
 *
 */

package kumagai

import (
	"io"
	"log"

	"github.com/rmera/defcorr/sites"
)

// Options contains the settings of a correction that are not part of the bulk
// Madelung calculation.
type Options struct {
	sites       *sites.Options
	allSites    bool
	skipFlagged bool
	logger      *log.Logger
}

// DefaultOptions returns options that use all sites outside the sampling radius,
// flagged or not, and compute the potentials for every site, for the report.
func DefaultOptions() *Options {
	return &Options{sites: sites.DefaultOptions(), allSites: true, logger: discard}
}

// Sites returns the options for site matching, and sets them to a new value, if given.
func (O *Options) Sites(s ...*sites.Options) *sites.Options {
	if len(s) > 0 && s[0] != nil {
		O.sites = s[0]
	}
	if O.sites == nil {
		return sites.DefaultOptions()
	}
	return O.sites
}

// AllSites returns whether the potentials are computed for every site, not only
// those used for the alignment, and sets it to a new value, if given.
func (O *Options) AllSites(b ...bool) bool {
	if len(b) > 0 {
		O.allSites = b[0]
	}
	return O.allSites
}

// SkipFlagged returns whether sites with inconsistent periodic images are left out
// of the alignment, and sets it to a new value, if given.
func (O *Options) SkipFlagged(b ...bool) bool {
	if len(b) > 0 {
		O.skipFlagged = b[0]
	}
	return O.skipFlagged
}

var discard = log.New(io.Discard, "", 0)

// Logger returns the logger, and sets it to a new value, if given.
// Without a logger, messages are discarded.
func (O *Options) Logger(l ...*log.Logger) *log.Logger {
	if len(l) > 0 {
		O.logger = l[0]
	}
	if O.logger == nil {
		return discard
	}
	return O.logger
}
