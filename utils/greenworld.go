package utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hanacard-dev/cardbenefits/config"
	"github.com/hanacard-dev/cardbenefits/models"
	"gorm.io/gorm"
)

// greenWorldClient performs the outbound partner calls. The call is made
// inline on the caller's request; the partner endpoint is trusted to
// answer promptly.
var greenWorldClient = &http.Client{}

// FindGreenWorldCustomer looks up the partner-side member record by phone
// number. Returns nil when the partner has no record or the call fails for
// any reason.
func FindGreenWorldCustomer(phoneNumber string) map[string]interface{} {
	url := config.GreenWorldBaseURL() + "/api/members/find-by-phone"

	body, err := json.Marshal(map[string]string{"phoneNumber": phoneNumber})
	if err != nil {
		LogError("Failed to encode green world lookup request: %v", err)
		return nil
	}

	resp, err := greenWorldClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		LogError("Green world customer lookup failed - phone: %s: %v", phoneNumber, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		LogError("Green world customer lookup failed - phone: %s, status: %d", phoneNumber, resp.StatusCode)
		return nil
	}

	var customer map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
		LogError("Failed to decode green world customer response: %v", err)
		return nil
	}

	return customer
}

// ExtractHanaMoney pulls the hanaMoney balance out of a partner customer
// payload, coercing number or numeric-string forms. Defaults to 0.
func ExtractHanaMoney(customer map[string]interface{}) int64 {
	switch v := customer["hanaMoney"].(type) {
	case float64:
		return int64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		LogError("Failed to parse green world hanaMoney value: %q", v)
	}
	return 0
}

// SyncHanaMoneyFromGreenWorld reconciles the user's local hana-money
// balance against the green world partner. Partner failures never
// propagate: the routine falls back to the existing membership, creating a
// zero-balance one if the user has none yet. Every applied delta writes
// exactly one ledger row.
func SyncHanaMoneyFromGreenWorld(userID uint) (*models.HanamoneyMembership, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}

	customer := FindGreenWorldCustomer(user.PhoneNumber)
	if customer == nil {
		LogInfo("No green world record for user %d, keeping local balance", userID)
		return GetOrCreateMembership(userID)
	}

	greenWorldBalance := ExtractHanaMoney(customer)

	membership, err := GetOrCreateMembership(userID)
	if err != nil {
		return nil, err
	}

	if err := syncBalance(membership, greenWorldBalance); err != nil {
		// The rolled-back adjustment may have mutated the in-memory
		// struct; reload so the caller sees the stored balance.
		LogError("Green world balance sync failed - user: %d: %v", userID, err)
		return GetOrCreateMembership(userID)
	}

	return membership, nil
}

// syncBalance applies the delta between the partner balance and the local
// balance: positive deltas earn, negative deltas spend when the local
// balance can cover them. Balance update and ledger row commit together.
func syncBalance(membership *models.HanamoneyMembership, greenWorldBalance int64) error {
	difference := greenWorldBalance - membership.Balance
	if difference == 0 {
		return nil
	}

	return config.DB.Transaction(func(tx *gorm.DB) error {
		var transaction models.HanamoneyTransaction

		if difference > 0 {
			membership.Earn(difference)
			transaction = models.HanamoneyTransaction{
				MembershipID: membership.ID,
				Amount:       difference,
				BalanceAfter: membership.Balance,
				Type:         models.HanamoneyTransactionEarn,
				Description:  "Green world sync - earn",
			}
		} else {
			absDifference := -difference
			if membership.Balance < absDifference {
				// Local balance cannot cover the deduction; skip the
				// adjustment and keep the local balance as-is.
				return nil
			}
			membership.Spend(absDifference)
			transaction = models.HanamoneyTransaction{
				MembershipID: membership.ID,
				Amount:       absDifference,
				BalanceAfter: membership.Balance,
				Type:         models.HanamoneyTransactionSpend,
				Description:  "Green world sync - spend",
			}
		}

		if err := tx.Save(membership).Error; err != nil {
			return err
		}
		return tx.Create(&transaction).Error
	})
}

// SyncToGreenWorld pushes a local hana-money change to the partner.
// Best-effort: failure is logged and never rolls back or retries the local
// operation that triggered it.
func SyncToGreenWorld(userID uint, amount int64, transactionType, description string) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		LogError("Green world push skipped, user %d not found: %v", userID, err)
		return
	}

	url := config.GreenWorldBaseURL() + "/api/members/update-hana-money"
	body, err := json.Marshal(map[string]interface{}{
		"phoneNumber":     user.PhoneNumber,
		"amount":          amount,
		"transactionType": transactionType,
		"description":     description,
	})
	if err != nil {
		LogError("Failed to encode green world update request: %v", err)
		return
	}

	resp, err := greenWorldClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		LogError("Green world push failed - user: %d, amount: %d, type: %s: %v", userID, amount, transactionType, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		LogError("Green world push failed - user: %d, status: %d", userID, resp.StatusCode)
		return
	}

	LogInfo("Green world push complete - user: %d, amount: %d, type: %s", userID, amount, transactionType)
}
