package ledger

import "beer_machine/internal/models"

// AddCredits applies a checked credit top-up to the user. Top-ups are only
// accepted in positive blocks of 10.
func AddCredits(user *models.User, amount int) error {
	if amount <= 0 || amount%10 != 0 {
		return ErrInvalidAmount
	}
	user.Credits += amount
	return nil
}

// DeductCredits applies a checked balance deduction, used by the sale path.
func DeductCredits(user *models.User, amount int) error {
	if user.Credits < amount {
		return &InsufficientCreditsError{Required: amount, Available: user.Credits}
	}
	user.Credits -= amount
	return nil
}

// AddCreditsUnchecked restores credits without the block-of-10 rule. It
// exists solely to reverse a sale, whose amount (price times quantity) can be
// any integer; normal code paths must use AddCredits.
func AddCreditsUnchecked(user *models.User, amount int) {
	user.Credits += amount
}

// DeductCreditsUnchecked removes credits without the block-of-10 rule, used
// solely to reverse a credit addition. The balance still cannot go negative:
// a top-up whose credits were since spent cannot be undone.
func DeductCreditsUnchecked(user *models.User, amount int) error {
	if user.Credits < amount {
		return &InsufficientCreditsError{Required: amount, Available: user.Credits}
	}
	user.Credits -= amount
	return nil
}
