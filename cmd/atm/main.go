package main

import (
	"log"
	"os"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/atm-banking-simulator/internal/atm"
	"github.com/sheikh-saqib/atm-banking-simulator/internal/config"
	"github.com/sheikh-saqib/atm-banking-simulator/internal/events/kafka"
	"github.com/sheikh-saqib/atm-banking-simulator/internal/events/logpub"
	"github.com/sheikh-saqib/atm-banking-simulator/internal/interfaces"
	"github.com/sheikh-saqib/atm-banking-simulator/internal/ledger"
	"github.com/sheikh-saqib/atm-banking-simulator/internal/storage/memory"
)

func main() {
	cfg := config.Load()

	journal := memory.NewJournal()

	var publisher interfaces.EventPublisher = logpub.NewPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers, cfg.EventTopic)
		defer kp.Close()
		publisher = kp
	}

	bank := ledger.NewBank(journal, publisher, cfg.EventTopic)
	seedDemoAccounts(bank)

	atm.NewSession(bank, os.Stdin, os.Stdout).Run()
}

// seedDemoAccounts registers the fixed demo accounts the simulator ships
// with. Registration happens before the session starts, so no lookup can
// race a registration.
func seedDemoAccounts(bank *ledger.Bank) {
	demo := []struct {
		id, pin, opening string
	}{
		{"1001", "1234", "5000.00"},
		{"1002", "4321", "3500.00"},
		{"1003", "0000", "1000.00"},
	}
	for _, d := range demo {
		if _, err := bank.Open(d.id, d.pin, decimal.RequireFromString(d.opening)); err != nil {
			log.Fatalf("seed account %s: %v", d.id, err)
		}
	}
}
