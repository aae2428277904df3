package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/electrabase/pkg/types"
)

// SampleComponents returns the demonstration set inserted by SeedSampleData.
// It covers all eight system categories.
func SampleComponents() []types.Component {
	return []types.Component{
		// Resistors
		types.NewPassive("RES-10R-0805", "Yageo", 100, "Resistor", 10.0, "Ω", "0805"),
		types.NewPassive("RES-100R-0805", "Yageo", 150, "Resistor", 100.0, "Ω", "0805"),
		types.NewPassive("RES-1K-0603", "Vishay", 200, "Resistor", 1000.0, "Ω", "0603"),
		types.NewPassive("RES-4K7-0805", "Panasonic", 75, "Resistor", 4700.0, "Ω", "0805"),
		types.NewPassive("RES-10K-0805", "Yageo", 8, "Resistor", 10000.0, "Ω", "0805"),
		types.NewPassive("RES-100K-1206", "Vishay", 50, "Resistor", 100000.0, "Ω", "1206"),

		// Capacitors
		types.NewPassive("CAP-100nF-0805", "Murata", 300, "Capacitor", 100e-9, "F", "0805"),
		types.NewPassive("CAP-1uF-0805", "Samsung", 5, "Capacitor", 1e-6, "F", "0805"),
		types.NewPassive("CAP-10uF-1206", "Murata", 120, "Capacitor", 10e-6, "F", "1206"),
		types.NewPassive("CAP-100pF-0603", "TDK", 180, "Capacitor", 100e-12, "F", "0603"),

		// Inductors
		types.NewPassive("IND-10uH-1210", "Wurth", 45, "Inductor", 10e-6, "H", "1210"),
		types.NewPassive("IND-100uH-THT", "Bourns", 3, "Inductor", 100e-6, "H", "Radial"),

		// ICs
		types.NewActive("ATmega328P", "Microchip", 25, "IC", 5.0, 28,
			"https://ww1.microchip.com/downloads/en/DeviceDoc/ATmega328P.pdf"),
		types.NewActive("STM32F103C8T6", "STMicroelectronics", 15, "IC", 3.3, 48,
			"https://www.st.com/resource/en/datasheet/stm32f103c8.pdf"),
		types.NewActive("NE555", "Texas Instruments", 50, "IC", 15.0, 8,
			"https://www.ti.com/lit/ds/symlink/ne555.pdf"),
		types.NewActive("LM7805", "ON Semiconductor", 7, "IC", 35.0, 3, ""),
		types.NewActive("ESP32-WROOM-32", "Espressif", 12, "IC", 3.3, 38,
			"https://www.espressif.com/sites/default/files/documentation/esp32-wroom-32_datasheet_en.pdf"),

		// Transistors
		types.NewActive("2N2222A", "ON Semiconductor", 200, "Transistor", 40.0, 3, ""),
		types.NewActive("BC547B", "Fairchild", 150, "Transistor", 45.0, 3, ""),
		types.NewActive("IRF540N", "Infineon", 6, "Transistor", 100.0, 3, ""),

		// Diodes
		types.NewActive("1N4148", "Vishay", 500, "Diode", 100.0, 2, ""),
		types.NewActive("1N4007", "ON Semiconductor", 300, "Diode", 1000.0, 2, ""),
		types.NewActive("LED-RED-5mm", "Kingbright", 9, "Diode", 2.0, 2, ""),

		// Connectors and miscellaneous parts carry free-form parameters
		types.NewPassive("HDR-1x40-2.54", "Amphenol", 20, "Connector", 2.54, "mm", "THT"),
		types.NewPassive("USB-C-16P", "GCT", 4, "Connector", 16, "pins", "SMD"),
		types.NewPassive("HS-TO220", "Aavid", 10, "Other", 0, "", "TO-220"),
	}
}

// SeedSampleData inserts SampleComponents when enabled and the inventory
// table is empty. Returns the number of rows inserted.
func (s *SQLiteStorage) SeedSampleData(ctx context.Context, enabled bool) (int, error) {
	if !enabled {
		return 0, nil
	}

	inserted := 0
	err := s.conn.withTx(ctx, func(q querier) error {
		var count int
		if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM inventory").Scan(&count); err != nil {
			return fmt.Errorf("failed to count components: %w", classifyError(err))
		}
		if count > 0 {
			return nil
		}

		for _, c := range SampleComponents() {
			if _, err := s.components.addWithQuerier(ctx, q, c); err != nil {
				return fmt.Errorf("failed to seed %s: %w", c.Name, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if inserted > 0 {
		zap.S().Named("storage").Infow("sample data populated", "components", inserted)
	}
	return inserted, nil
}
