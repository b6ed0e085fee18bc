// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package reduce

import "github.com/luxfi/kemeny/kerrors"

func errInvalidRulesBits(bits string) error {
	return kerrors.NewBadConversion(bits, "4-bit rules-selection-mode")
}
