package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/enzo-santos-ufpa/sd/examples/assembly"
	"github.com/enzo-santos-ufpa/sd/examples/clinic"
	"github.com/enzo-santos-ufpa/sd/examples/distribution"
	"github.com/enzo-santos-ufpa/sd/examples/espressobar"
	"github.com/enzo-santos-ufpa/sd/examples/laundromat"
	"github.com/enzo-santos-ufpa/sd/sim"
	"github.com/enzo-santos-ufpa/sd/simulation"
)

var espressoBarCmd = &cobra.Command{
	Use:   "espressobar",
	Short: "Morning rush at an espresso bar",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := espressobar.DefaultConfig()
		loadScenarioConfig(&cfg)
		if flagUntil > 0 {
			cfg.Until = sim.VTime(flagUntil)
		}

		runScenario(func(s *simulation.Simulation) error {
			res, err := espressobar.Run(s, cfg)
			if err != nil {
				return err
			}

			fmt.Printf("Drinks served: %d\n", res.Drinks)
			printSummary("Time in bar", res.Stay)
			printSummary("Wait for a seat", res.SeatWait)
			printSummary("Wait to order", res.OrderWait)
			printSummary("Wait for the drink", res.ServeWait)
			printSummary("Preparation time", res.PrepTime)
			return nil
		})
	},
}

var laundromatCmd = &cobra.Command{
	Use:   "laundromat",
	Short: "Self-service laundromat with washers, baskets and dryers",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := laundromat.DefaultConfig()
		loadScenarioConfig(&cfg)
		if flagUntil > 0 {
			cfg.Until = sim.VTime(flagUntil)
		}

		runScenario(func(s *simulation.Simulation) error {
			res, err := laundromat.Run(s, cfg)
			if err != nil {
				return err
			}

			fmt.Printf("Loads finished: %d\n", res.Loads)
			printSummary("Time in laundromat", res.Stay)
			printSummary("Wait for a washer", res.WasherWait)
			printSummary("Wait for a basket", res.BasketWait)
			printSummary("Wait for a dryer", res.DryerWait)
			return nil
		})
	},
}

var clinicCmd = &cobra.Command{
	Use:   "clinic",
	Short: "Walk-in clinic with reception, doctors and payment",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := clinic.DefaultConfig()
		loadScenarioConfig(&cfg)
		if flagUntil > 0 {
			cfg.Until = sim.VTime(flagUntil)
		}

		runScenario(func(s *simulation.Simulation) error {
			res, err := clinic.Run(s, cfg)
			if err != nil {
				return err
			}

			fmt.Printf("Patients discharged: %d\n", res.Patients)
			printSummary("Door to door", res.DoorToDoor)

			severities := make([]string, 0, len(res.BySeverity))
			for name := range res.BySeverity {
				severities = append(severities, name)
			}
			sort.Strings(severities)
			for _, name := range severities {
				printSummary("  "+name, res.BySeverity[name])
			}

			printSummary("Reception wait", res.ReceptionWait)
			printSummary("Doctor wait", res.DoctorWait)
			return nil
		})
	},
}

var assemblyCmd = &cobra.Command{
	Use:   "assembly",
	Short: "Assembly cell with a supplier, fixers and joiners",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := assembly.DefaultConfig()
		loadScenarioConfig(&cfg)
		if flagUntil > 0 {
			cfg.Until = sim.VTime(flagUntil)
		}

		runScenario(func(s *simulation.Simulation) error {
			res, err := assembly.Run(s, cfg)
			if err != nil {
				return err
			}

			fmt.Printf("Pairs fixed: %d\n", res.UnitsFixed)
			fmt.Printf("Pairs joined: %d\n", res.UnitsJoined)
			printSummary("Wait for parts", res.PartsWait)
			printSummary("Wait for the machine", res.MachineWait)
			printSummary("Wait for fixed pairs", res.FixedWait)
			printSummary("Wait for screws", res.ScrewsWait)
			printSummary("Stockout wait", res.StockoutWait)
			return nil
		})
	},
}

var distributionCmd = &cobra.Command{
	Use:   "distribution",
	Short: "Parcel distribution center with trucks, a shared crew and vans",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := distribution.DefaultConfig()
		loadScenarioConfig(&cfg)
		if flagUntil > 0 {
			cfg.Until = sim.VTime(flagUntil)
		}

		runScenario(func(s *simulation.Simulation) error {
			res, err := distribution.Run(s, cfg)
			if err != nil {
				return err
			}

			fmt.Printf("Trucks unloaded: %d\n", res.TrucksServed)
			fmt.Printf("Vans dispatched: %d\n", res.VansDispatched)
			fmt.Printf("Loads refused: %d\n", res.RefusedLoads)
			printSummary("Wait for a bay", res.ParkWait)
			printSummary("Wait for opening", res.OpenWait)
			printSummary("Wait for the dock", res.UnloadDockWait)
			printSummary("Unloading", res.UnloadTime)
			printSummary("Wait for the load point", res.LoadDockWait)
			printSummary("Wait for a shipment", res.ShipmentWait)
			printSummary("Loading", res.LoadTime)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(espressoBarCmd)
	rootCmd.AddCommand(laundromatCmd)
	rootCmd.AddCommand(clinicCmd)
	rootCmd.AddCommand(assemblyCmd)
	rootCmd.AddCommand(distributionCmd)
}
