package smart

// seedAttributeDatabase populates the built-in id-to-description table.
// IDs and smartctl-reported names follow the common ATA SMART attribute
// assignments as printed by smartctl; generic_name keys are prefixed with
// "attr_" so the severity classifier (severity.go) can match on them
// without depending on the vendor-specific reported name or id alone.
// Disk-class-specific reinterpretations are layered on top of an Any-class
// default via addRef so an SSD-only meaning doesn't have to repeat
// description text that otherwise applies unchanged.
func seedAttributeDatabase(db *Database) {
	db.addAttribute(1, DiskClassAny, "Raw_Read_Error_Rate", "attr_raw_read_error_rate",
		"Read Error Rate",
		"Rate of hardware read errors that occurred while reading data from the disk surface.")
	db.addAttribute(2, DiskClassAny, "Throughput_Performance", "attr_throughput_performance",
		"Throughput Performance",
		"Average efficiency of the disk's throughput performance, relative to the device's design specification.")
	db.addAttribute(3, DiskClassAny, "Spin_Up_Time", "attr_spin_up_time",
		"Spin-Up Time",
		"Average time of spindle spin-up, from zero RPM to fully operational.")
	db.addAttribute(4, DiskClassAny, "Start_Stop_Count", "attr_start_stop_count",
		"Start/Stop Count",
		"Number of spindle start/stop cycles.")
	db.addAttribute(5, DiskClassAny, "Reallocated_Sector_Ct", "attr_reallocated_sector_count",
		"Reallocated Sector Count",
		"Count of sectors that have been reallocated after being deemed unreadable. A rising count is an early warning sign of drive failure.")
	// SSD firmwares report this slot as a spare-block utilization rate
	// rather than a raw reallocation count; kept as a distinct entry
	// instead of forcing the HDD reading onto it.
	db.addAttribute(5, DiskClassSSD, "Retired_Block_Count", "attr_ssd_life_left",
		"Retired Block Rate",
		"Percentage computed from the ratio of retired blocks to the maximum retired-block budget for the drive.")
	db.addAttribute(6, DiskClassAny, "Read_Channel_Margin", "attr_read_channel_margin",
		"Read Channel Margin",
		"Margin of a channel while reading data, used internally by vendor diagnostics.")
	db.addAttribute(7, DiskClassHDD, "Seek_Error_Rate", "attr_seek_error_rate",
		"Seek Error Rate",
		"Rate of seek errors of the magnetic heads.")
	db.addAttribute(8, DiskClassHDD, "Seek_Time_Performance", "attr_seek_time_performance",
		"Seek Time Performance",
		"Average efficiency of operations while positioning the heads.")
	db.addAttribute(9, DiskClassAny, "Power_On_Hours", "attr_power_on_hours",
		"Power-On Hours",
		"Count of hours the device has been powered on.")
	db.addAttribute(10, DiskClassHDD, "Spin_Retry_Count", "attr_spin_up_retry_count",
		"Spin Retry Count",
		"Count of retry attempts needed to spin up the spindle to its rated speed.")
	db.addAttribute(11, DiskClassHDD, "Calibration_Retry_Count", "attr_calibration_retry_count",
		"Calibration Retry Count",
		"Count of times the recalibration procedure was attempted after an initial failure.")
	db.addAttribute(12, DiskClassAny, "Power_Cycle_Count", "attr_power_cycle_count",
		"Power Cycle Count",
		"Count of full power-on/power-off cycles.")
	db.addAttribute(13, DiskClassAny, "Soft_Read_Error_Rate", "attr_soft_read_error_rate",
		"Soft Read Error Rate",
		"Frequency of 'program' read errors, corrected by on-board firmware retries.")
	db.addAttribute(22, DiskClassSSD, "Helium_Level", "attr_helium_level",
		"Helium Level",
		"Remaining helium fill level, for helium-sealed drives.")
	db.addAttribute(170, DiskClassSSD, "Reserved_Block_Pct", "attr_reserved_block_percentage",
		"Reserved Block Count (Percentage)",
		"Percentage of the factory-provisioned spare block pool that remains available.")
	db.addAttribute(171, DiskClassSSD, "Program_Fail_Count", "attr_program_fail_count",
		"Program Fail Count",
		"Count of flash program (write) operations that failed.")
	db.addAttribute(172, DiskClassSSD, "Erase_Fail_Count", "attr_erase_fail_count",
		"Erase Fail Count",
		"Count of flash erase operations that failed.")
	db.addAttribute(173, DiskClassSSD, "Wear_Leveling_Count", "attr_ssd_life_used",
		"Wear Range Delta",
		"Difference between the maximum and minimum erase counts across all blocks.")
	db.addAttribute(174, DiskClassSSD, "Unexpect_Power_Loss_Ct", "attr_unexpected_power_loss_count",
		"Unexpected Power Loss Count",
		"Count of shutdowns that did not follow a normal power-off sequence.")
	db.addAttribute(175, DiskClassSSD, "Program_Fail_Count_Chip", "attr_program_fail_count_chip",
		"Program Fail Count (Chip)",
		"Cumulative count of flash program failures, reported per die.")
	db.addAttribute(176, DiskClassSSD, "Erase_Fail_Count_Chip", "attr_erase_fail_count_chip",
		"Erase Fail Count (Chip)",
		"Cumulative count of flash erase failures, reported per die.")
	db.addAttribute(177, DiskClassSSD, "Wear_Leveling_Count", "attr_wear_range_delta",
		"Wear Range Delta",
		"Difference between the maximum and minimum erase counts across all blocks.")
	db.addAttribute(178, DiskClassSSD, "Used_Rsvd_Blk_Cnt_Chip", "attr_used_reserved_block_count_chip",
		"Used Reserved Block Count (Chip)",
		"Count of reserved blocks that have been used, reported per die.")
	db.addAttribute(179, DiskClassSSD, "Used_Rsvd_Blk_Cnt_Tot", "attr_used_reserved_block_count_total",
		"Used Reserved Block Count (Total)",
		"Total count of reserved blocks that have been used across the drive.")
	db.addAttribute(180, DiskClassSSD, "Unused_Rsvd_Blk_Cnt_Tot", "attr_unused_reserved_block_count_total",
		"Unused Reserved Block Count (Total)",
		"Total count of reserved blocks that remain available for reallocation.")
	db.addAttribute(181, DiskClassAny, "Program_Fail_Cnt_Total", "attr_program_fail_count_total",
		"Program Fail Count (Total)",
		"Total count of flash program failures, or for HDDs, unrecoverable errors in the device error log.")
	db.addAttribute(182, DiskClassAny, "Erase_Fail_Count_Total", "attr_erase_fail_count_total",
		"Erase Fail Count (Total)",
		"Total count of flash erase failures.")
	db.addAttribute(183, DiskClassAny, "Runtime_Bad_Block", "attr_runtime_bad_block_count",
		"Runtime Bad Block Count",
		"Count of bad blocks or read/write/verify errors that accumulated during normal operation.")
	db.addAttribute(184, DiskClassAny, "End-to-End_Error", "attr_end_to_end_error_count",
		"End-to-End Error Count",
		"Count of parity errors detected while data travels from the disk buffer to the host.")
	db.addAttribute(187, DiskClassAny, "Reported_Uncorrect", "attr_reported_uncorrectable_count",
		"Reported Uncorrectable Errors",
		"Count of errors that could not be recovered using hardware ECC.")
	db.addAttribute(188, DiskClassAny, "Command_Timeout", "attr_command_timeout_count",
		"Command Timeout Count",
		"Count of commands that did not complete within the specified time limit.")
	db.addAttribute(189, DiskClassHDD, "High_Fly_Writes", "attr_high_fly_writes_count",
		"High Fly Writes Count",
		"Count of write operations performed while the head was flying outside its normal operating range.")
	db.addAttribute(190, DiskClassAny, "Airflow_Temperature_Cel", "attr_airflow_temperature",
		"Airflow Temperature",
		"Temperature reading, sometimes relative to a minimum rated operating temperature.")
	db.addAttribute(191, DiskClassHDD, "G-Sense_Error_Rate", "attr_g_sense_error_rate",
		"G-Sense Error Rate",
		"Count of errors from externally-induced shock or vibration.")
	db.addAttribute(192, DiskClassAny, "Power-Off_Retract_Count", "attr_power_off_retract_count",
		"Power-Off Retract Count",
		"Count of times the heads were retracted (or, for some drives, emergency power-off events occurred).")
	db.addAttribute(193, DiskClassHDD, "Load_Cycle_Count", "attr_load_cycle_count",
		"Load Cycle Count",
		"Count of load/unload cycles into the head landing zone.")
	db.addAttribute(194, DiskClassAny, "Temperature_Celsius", "attr_temperature_celsius",
		"Temperature (Celsius)",
		"Current internal device temperature, in degrees Celsius. Often correlates with spindle motor load.")
	db.addAttribute(194, DiskClassAny, "Temperature_Celsius_x10", "attr_temperature_celsius_x10",
		"Temperature (Celsius) x 10",
		"Current internal device temperature, in tenths of a degree Celsius, as reported by vendors that use finer-grained units under this id.")
	db.addAttribute(195, DiskClassAny, "Hardware_ECC_Recovered", "attr_hardware_ecc_recovered_count",
		"Hardware ECC Recovered",
		"Count of errors recovered during read operations using on-the-fly ECC.")
	db.addAttribute(196, DiskClassHDD, "Reallocated_Event_Count", "attr_reallocation_event_count",
		"Reallocated Event Count",
		"Count of remap operations, counting the operation rather than the number of sectors involved.")
	db.addAttribute(197, DiskClassAny, "Current_Pending_Sector", "attr_current_pending_sector_count",
		"Current Pending Sector Count",
		"Count of unstable sectors awaiting remapping, because of unrecoverable read errors.")
	db.addAttribute(198, DiskClassAny, "Offline_Uncorrectable", "attr_offline_uncorrectable",
		"Offline Uncorrectable Sector Count",
		"Count of uncorrectable errors found during an offline scan.")
	// Some vendor firmwares repurpose id 198 as a host-writes counter on
	// SSDs instead of using id 241's usual slot; reproduced as-is for
	// behavioral fidelity with upstream smartmontools/GSmartControl
	// rather than remapped to a "corrected" id (DESIGN.md, Open
	// Questions resolved, #3).
	db.addAttribute(198, DiskClassSSD, "Host_Writes_GiB", "attr_host_writes_gib",
		"Host Writes (GiB)",
		"Cumulative data written by the host, in GiB, as reported under this nonstandard id by some SSD firmwares.")
	db.addAttribute(199, DiskClassAny, "UDMA_CRC_Error_Count", "attr_udma_crc_error_count",
		"UDMA CRC Error Count",
		"Count of CRC errors detected during UDMA data transfer, usually caused by a marginal cable.")
	db.addAttribute(200, DiskClassHDD, "Multi_Zone_Error_Rate", "attr_multi_zone_error_rate",
		"Multi Zone Error Rate",
		"Rate of errors while writing to a specific area of the platter surface.")
	db.addAttribute(201, DiskClassHDD, "Soft_Read_Error_Rate", "attr_off_track_error_rate",
		"Off-Track Error Rate",
		"Count of off-track errors, distinct from the uncorrected errors counted by id 1.")
	db.addAttribute(202, DiskClassAny, "Data_Address_Mark_Errs", "attr_data_address_mark_error_count",
		"Data Address Mark Errors",
		"Frequency of Data Address Mark errors.")
	db.addAttribute(203, DiskClassAny, "Run_Out_Cancel", "attr_ecc_error_count",
		"ECC Error Count",
		"Count of ECC errors, also known as Run Out Cancel.")
	db.addAttribute(204, DiskClassHDD, "Soft_ECC_Correction", "attr_soft_ecc_correction_count",
		"Soft ECC Correction",
		"Count of errors corrected by the on-drive error correction algorithm.")
	db.addAttribute(205, DiskClassHDD, "Thermal_Asperity_Rate", "attr_thermal_asperity_rate",
		"Thermal Asperity Rate",
		"Count of errors caused by a thermal asperity.")
	db.addAttribute(206, DiskClassHDD, "Flying_Height", "attr_flying_height",
		"Flying Height",
		"Current distance between the disk platter and the heads.")
	db.addAttribute(207, DiskClassHDD, "Spin_High_Current", "attr_spin_high_current",
		"Spin High Current",
		"Amount of surge current used to spin up the drive.")
	db.addAttribute(208, DiskClassHDD, "Spin_Buzz", "attr_spin_buzz",
		"Spin Buzz",
		"Count of buzz routine attempts used to spin up the drive when surge current is insufficient.")
	db.addAttribute(209, DiskClassHDD, "Offline_Seek_Performnce", "attr_offline_seek_performance",
		"Offline Seek Performance",
		"Seek performance of the drive's heads during offline operations.")
	db.addAttribute(220, DiskClassHDD, "Disk_Shift", "attr_disk_shift",
		"Disk Shift",
		"Distance the disk has shifted relative to the spindle, often caused by impact or thermal cycling.")
	db.addAttribute(221, DiskClassHDD, "G-Sense_Error_Rate", "attr_loaded_g_sense_error_rate",
		"G-Sense Error Rate",
		"Count of errors from a mechanical shock, vibration, or other loading event.")
	db.addAttribute(222, DiskClassHDD, "Loaded_Hours", "attr_loaded_hours",
		"Loaded Hours",
		"Hours spent operational and unparked.")
	db.addAttribute(223, DiskClassHDD, "Load_Retry_Count", "attr_load_retry_count",
		"Load Retry Count",
		"Count of times the drive's load cycle failed and was retried.")
	db.addAttribute(224, DiskClassHDD, "Load_Friction", "attr_load_friction",
		"Load Friction",
		"Resistance caused by friction in the head assembly's mechanism.")
	db.addAttribute(225, DiskClassAny, "Load_Cycle_Count", "attr_load_cycle_count_alt",
		"Load Cycle Count",
		"Total count of load cycles, an alternate location for id 193's measurement on some drives.")
	db.addAttribute(226, DiskClassHDD, "Load-in_Time", "attr_load_in_time",
		"Load-In Time",
		"Total time spent loading the heads onto the platters.")
	db.addAttribute(227, DiskClassHDD, "Torq-amp_Count", "attr_torque_amplification_count",
		"Torque Amplification Count",
		"Count of attempts made to compensate for platter speed variations.")
	db.addAttribute(228, DiskClassHDD, "Power-Off_Retract_Count", "attr_power_off_retract_count_alt",
		"Power-Off Retract Count",
		"Count of times the heads were retracted automatically as a result of power loss.")
	db.addAttribute(230, DiskClassSSD, "Life_Curve_Status", "attr_life_curve_status",
		"Life Curve Status",
		"Current state of the drive's estimated operational lifetime curve, as tracked by the vendor's wear model.")
	db.addAttribute(231, DiskClassSSD, "SSD_Life_Left", "attr_ssd_life_left_alt",
		"SSD Life Left",
		"Estimated remaining endurance of the flash media, expressed as a percentage of rated life.")
	db.addAttribute(232, DiskClassSSD, "Available_Reservd_Space", "attr_available_reserved_space",
		"Available Reserved Space",
		"Percentage of the spare block pool that remains available for reallocation.")
	db.addAttribute(233, DiskClassSSD, "Media_Wearout_Indicator", "attr_media_wearout_indicator",
		"Media Wearout Indicator",
		"Estimate of the flash media's remaining life based on the maximum rated number of program/erase cycles.")
	db.addAttribute(234, DiskClassSSD, "Average_erase_count", "attr_average_erase_count",
		"Average Erase Count",
		"Average number of erase cycles across all flash blocks.")
	db.addAttribute(235, DiskClassSSD, "Good_Block_Count", "attr_good_block_count",
		"Good Block Count",
		"Count of flash blocks still usable for program/erase cycles.")
	db.addAttribute(240, DiskClassAny, "Head_Flying_Hours", "attr_head_flying_hours",
		"Head Flying Hours",
		"Time spent actively positioning the heads, distinct from power-on time.")
	db.addAttribute(241, DiskClassAny, "Total_LBAs_Written", "attr_total_lbas_written",
		"Total LBAs Written",
		"Cumulative count of logical block addresses written over the device's lifetime.")
	db.addAttribute(242, DiskClassAny, "Total_LBAs_Read", "attr_total_lbas_read",
		"Total LBAs Read",
		"Cumulative count of logical block addresses read over the device's lifetime.")
	db.addAttribute(243, DiskClassSSD, "NAND_Writes_1GiB", "attr_nand_writes_1gib",
		"NAND Writes (1GiB units)",
		"Cumulative writes made directly to the NAND flash media, including write amplification, in 1GiB units.")
	db.addAttribute(250, DiskClassAny, "Read_Error_Retry_Rate", "attr_read_error_retry_rate",
		"Read Error Retry Rate",
		"Count of errors found while reading that required a retry.")
	db.addAttribute(254, DiskClassHDD, "Free_Fall_Sensor", "attr_free_fall_event_count",
		"Free Fall Event Count",
		"Count of free-fall events detected by the device's built-in accelerometer.")

	// SSD reinterpretations that reuse an HDD id's slot with a different
	// smartctl-reported name but the same generic meaning.
	db.addRef(9, DiskClassSSD, "Power_On_Hours_and_Msec")
}

// seedStatisticDatabase populates the Device Statistics (Devstat) name
// table. generic_name keys line up with the severity rules in
// severity.go; smartctl_name values follow the section headings smartctl
// prints for each ACS-4 Device Statistics log page.
func seedStatisticDatabase(db *Database) {
	db.addStatistic("Lifetime Power-On Resets", "stat_lifetime_power_on_resets",
		"Lifetime Power-On Resets",
		"Count of times the device has power-cycled or been reset since manufacture.")
	db.addStatistic("Power-on Hours", "stat_power_on_hours",
		"Power-On Hours",
		"Count of hours the device has been powered on.")
	db.addStatistic("Logical Sectors Written", "stat_logical_sectors_written",
		"Logical Sectors Written",
		"Count of logical sectors written by host write commands.")
	db.addStatistic("Number of Write Commands", "stat_write_commands",
		"Number of Write Commands",
		"Count of host write commands completed.")
	db.addStatistic("Logical Sectors Read", "stat_logical_sectors_read",
		"Logical Sectors Read",
		"Count of logical sectors read by host read commands.")
	db.addStatistic("Number of Read Commands", "stat_read_commands",
		"Number of Read Commands",
		"Count of host read commands completed.")
	db.addStatistic("Date and Time TimeStamp", "stat_timestamp",
		"Date and Time Timestamp",
		"Device-local timestamp of the last update to this statistics page, in milliseconds since power-on or time set.")
	db.addStatistic("Number of Reported Uncorrectable Errors", "stat_reported_uncorrectable_errors",
		"Reported Uncorrectable Errors",
		"Count of errors reported to the host as uncorrectable.")
	db.addStatistic("Resets Between Cmd Acceptance and Completion", "stat_resets_between_cmd_acceptance_and_completion",
		"Resets Between Command Acceptance and Completion",
		"Count of resets that occurred after a command was accepted but before it completed.")
	db.addStatistic("Pending Error Count", "stat_pending_error_count",
		"Pending Error Count",
		"Count of errors pending a retry or recovery action.")
	db.addStatistic("Utilization Usage Rate", "stat_utilization_usage_rate",
		"Utilization Usage Rate",
		"Vendor-specific estimate of how heavily the device has been used relative to its design workload.")
	db.addStatistic("Number of Reallocated Logical Sectors", "stat_reallocated_logical_sectors",
		"Number of Reallocated Logical Sectors",
		"Count of logical sectors that have been reallocated after being deemed unreadable.")
	db.addStatistic("Number of Mechanical Start Failures", "stat_mechanical_start_failures",
		"Number of Mechanical Start Failures",
		"Count of times the spindle motor failed to reach operating speed.")
	db.addStatistic("Number of Realloc. Candidate Logical Sectors", "stat_reallocation_candidate_logical_sectors",
		"Number of Reallocation Candidate Logical Sectors",
		"Count of logical sectors that are candidates for reallocation because of read instability.")
	db.addStatistic("Current Temperature", "stat_current_temperature",
		"Current Temperature",
		"Most recent temperature reading, in degrees Celsius.")
	db.addStatistic("Time in Over-Temperature", "stat_time_in_over_temperature",
		"Time in Over-Temperature",
		"Cumulative time the device has spent above its rated maximum temperature.")
	db.addStatistic("Time in Under-Temperature", "stat_time_in_under_temperature",
		"Time in Under-Temperature",
		"Cumulative time the device has spent below its rated minimum temperature.")
	db.addStatistic("Percentage Used Endurance Indicator", "stat_percentage_used_endurance_indicator",
		"Percentage Used Endurance Indicator",
		"Vendor-specific estimate of the percentage of the rated endurance that has been consumed.")
	db.addStatistic("Workload Utilization", "stat_workload_utilization",
		"Workload Utilization",
		"Vendor-specific estimate of how heavily the device has been used relative to its design workload.")
	db.addStatistic("Physical Element Status Changed", "stat_physical_element_status_changed",
		"Physical Element Status Changed",
		"Indicates whether a physical storage element has reported a status change (used by storage elements that can be individually depopulated).")
}
