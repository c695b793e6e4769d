package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var (
	mirrorScanTimeout  time.Duration
	devicesScanTimeout time.Duration
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Mirror a GoCube smart cube over Bluetooth",
	Long: `Connect to the first GoCube found and animate every turn made on it.

Start with the physical cube solved. The keyboard still works, but turns
made from it are not sent to the physical cube.`,
	RunE: runMirror,
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Scan for GoCube smart cubes",
	RunE:  runDevices,
}

func init() {
	mirrorCmd.Flags().DurationVar(&mirrorScanTimeout, "scan", 10*time.Second, "How long to scan for a cube")
	devicesCmd.Flags().DurationVar(&devicesScanTimeout, "scan", 5*time.Second, "How long to scan")
	rootCmd.AddCommand(mirrorCmd)
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	fmt.Println("Scanning for GoCube devices...")
	devices, err := cubesim.ScanDevices(context.Background(), devicesScanTimeout, cubesim.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if len(devices) == 0 {
		fmt.Println("No GoCube found. Make sure it is awake and not connected to a phone.")
		return nil
	}
	for _, d := range devices {
		fmt.Printf("%-24s RSSI %d dBm\n", d.Name, d.RSSI)
	}
	return nil
}

func runMirror(cmd *cobra.Command, args []string) error {
	keys, err := loadKeymap()
	if err != nil {
		return err
	}

	fmt.Println("Scanning for GoCube devices...")
	ctx := context.Background()
	devices, err := cubesim.ScanDevices(ctx, mirrorScanTimeout, cubesim.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if len(devices) == 0 {
		return cubesim.ErrDeviceNotFound
	}
	fmt.Printf("Found: %s\n", devices[0].Name)

	mirror, err := cubesim.ConnectMirror(ctx, devices[0], cubesim.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer mirror.Close()
	if err := mirror.FlashBacklight(); err != nil {
		logger.WithError(err).Debug("flash failed")
	}

	db, j, err := openJournal(storage.SourceMirror, "")
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		defer j.Close()
	}

	c, err := newCube(j, nil)
	if err != nil {
		return err
	}
	model := newPlayModel(c, keys, cfg.FrameInterval(), logger).
		withMirror(mirror.Moves(), mirror.DeviceName(), mirror.Battery)
	return runProgram(model)
}
